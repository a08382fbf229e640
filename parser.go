// Package sfv is an incremental, zero-copy parser for HTTP Structured
// Field Values: the wire format used in HTTP headers for lists,
// dictionaries, and items built from typed bare values and parameters.
//
// A Parser borrows a single contiguous []byte for its whole lifetime and
// is driven by the caller through Dict, List, or Item — whichever matches
// the header's declared field type — calling the same method in a loop
// until it returns ErrEOF or a non-nil, non-ErrEOF error. Sub-structure
// (parameters, inner lists) the caller does not descend into via Param or
// InnerList is silently skipped on the next top-level call. No copy of
// the input is ever made; String, Token, and ByteSequence values in the
// returned Value are sub-slices of the original input.
package sfv

import "fmt"

// Parser holds a read-only cursor over a borrowed byte slice plus the
// state machine's current position. The zero value is not usable; build
// one with NewParser or Init.
type Parser struct {
	buf       []byte
	pos       int
	state     state
	backState state
}

// NewParser returns a Parser ready to iterate over b. b must outlive the
// Parser and every Value borrowed from it.
func NewParser(b []byte) *Parser {
	p := &Parser{}
	p.Init(b)
	return p
}

// Init (re)initializes p to parse b from the start. Empty input is legal.
func (p *Parser) Init(b []byte) {
	*p = Parser{buf: b}
}

// Pos returns the current byte offset of the cursor, useful for
// diagnostics after a parse error.
func (p *Parser) Pos() int { return p.pos }

func (p *Parser) eof() bool { return p.pos >= len(p.buf) }

func (p *Parser) cur() byte { return p.buf[p.pos] }

func (p *Parser) advance() { p.pos++ }

// skipOWS skips SP or HTAB: the grammar's optional-whitespace class, used
// at top-level element separators.
func (p *Parser) skipOWS() {
	for !p.eof() && isWS(p.cur()) {
		p.advance()
	}
}

// skipSP skips SP only (not HTAB): used after ';' in a parameter tail,
// inside inner lists, and at a field value's leading (dict/list) or
// trailing (item) whitespace, per the grammar's asymmetry between OWS and
// SP.
func (p *Parser) skipSP() {
	for !p.eof() && p.cur() == ' ' {
		p.advance()
	}
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s (at byte %d)", ErrParse, fmt.Sprintf(format, args...), p.pos)
}

// Dict parses the next `key` / `key=bare-item-or-inner-list` member of a
// Dictionary structured field, returning ErrEOF once the input (or
// current separator) is exhausted. Valid entry states: just initialized,
// or positioned after a previous Dict call's value/inner-list/parameters.
func (p *Parser) Dict() (Key, Value, error) {
	switch p.state {
	case stateInitial:
	case stateDictValueInnerList:
		if err := p.skipInnerList(); err != nil {
			return nil, Value{}, err
		}
		if err := p.skipParams(); err != nil {
			return nil, Value{}, err
		}
	case stateDictValueParams:
		if err := p.skipParams(); err != nil {
			return nil, Value{}, err
		}
	case stateAfterDictValue:
	default:
		panic("sfv: Dict called in a state that does not permit it")
	}

	if p.state == stateInitial {
		p.skipSP()
		if p.eof() {
			return nil, Value{}, ErrEOF
		}
	} else {
		p.skipOWS()
		if p.eof() {
			return nil, Value{}, ErrEOF
		}
		if p.cur() != ',' {
			return nil, Value{}, p.errorf("dict: expected ','")
		}
		p.advance()
		p.skipOWS()
		if p.eof() {
			return nil, Value{}, p.errorf("dict: trailing comma")
		}
	}

	var key Key
	if err := p.scanKey(&key); err != nil {
		return nil, Value{}, err
	}

	if !p.eof() && p.cur() == '=' {
		p.advance()
		if !p.eof() && p.cur() == '(' {
			p.advance()
			p.state = stateDictValueInnerList
			return key, Value{typ: InnerList}, nil
		}
		var v Value
		if err := p.scanBareItem(&v); err != nil {
			return nil, Value{}, err
		}
		p.state = stateDictValueParams
		return key, v, nil
	}

	p.state = stateDictValueParams
	return key, Value{typ: Boolean, boolean: true}, nil
}

// List parses the next member (bare item or inner-list marker) of a List
// structured field, returning ErrEOF once exhausted. Valid entry states
// mirror Dict's, without a key.
func (p *Parser) List() (Value, error) {
	switch p.state {
	case stateInitial:
	case stateListInnerList:
		if err := p.skipInnerList(); err != nil {
			return Value{}, err
		}
		if err := p.skipParams(); err != nil {
			return Value{}, err
		}
	case stateListItemParams:
		if err := p.skipParams(); err != nil {
			return Value{}, err
		}
	case stateAfterListItem:
	default:
		panic("sfv: List called in a state that does not permit it")
	}

	if p.state == stateInitial {
		p.skipSP()
		if p.eof() {
			return Value{}, ErrEOF
		}
	} else {
		p.skipOWS()
		if p.eof() {
			return Value{}, ErrEOF
		}
		if p.cur() != ',' {
			return Value{}, p.errorf("list: expected ','")
		}
		p.advance()
		p.skipOWS()
		if p.eof() {
			return Value{}, p.errorf("list: trailing comma")
		}
	}

	if p.cur() == '(' {
		p.advance()
		p.state = stateListInnerList
		return Value{typ: InnerList}, nil
	}
	var v Value
	if err := p.scanBareItem(&v); err != nil {
		return Value{}, err
	}
	p.state = stateListItemParams
	return v, nil
}

// Item parses the single top-level value of an Item structured field: a
// bare item or inner-list marker, followed by parameters. The first call
// returns the value; subsequent calls skip whatever sub-structure the
// caller did not consume, require the remainder of the input to be only
// trailing SP, and return ErrEOF.
func (p *Parser) Item() (Value, error) {
	switch p.state {
	case stateInitial:
		if p.eof() {
			return Value{}, p.errorf("item: empty input")
		}
		if p.cur() == '(' {
			p.advance()
			p.state = stateItemInnerList
			return Value{typ: InnerList}, nil
		}
		var v Value
		if err := p.scanBareItem(&v); err != nil {
			return Value{}, err
		}
		p.state = stateItemParams
		return v, nil
	case stateItemInnerList:
		if err := p.skipInnerList(); err != nil {
			return Value{}, err
		}
		if err := p.skipParams(); err != nil {
			return Value{}, err
		}
	case stateItemParams:
		if err := p.skipParams(); err != nil {
			return Value{}, err
		}
	case stateAfterItem:
	default:
		panic("sfv: Item called in a state that does not permit it")
	}

	p.state = stateAfterItem
	p.skipSP()
	if p.eof() {
		return Value{}, ErrEOF
	}
	return Value{}, p.errorf("item: unexpected trailing data")
}

// InnerList parses the next element of an inner list, returning ErrEOF
// once its ')' has been consumed. Valid only when the parser is
// positioned just inside '(' (having just received an InnerList marker
// from Dict/List/Item) or between two elements of an already-entered
// inner list.
func (p *Parser) InnerList() (Value, error) {
	fresh := false
	switch p.state {
	case stateItemInnerList, stateListInnerList, stateDictValueInnerList:
		p.backState = p.state
		p.state = stateInnerListBareItem
		p.skipSP()
		if p.eof() {
			return Value{}, p.errorf("inner list: unexpected end of input")
		}
		fresh = true
	case stateInnerListBareItemParams:
		if err := p.skipParams(); err != nil {
			return Value{}, err
		}
	case stateInnerListBareItem:
	default:
		panic("sfv: InnerList called in a state that does not permit it")
	}

	if !fresh {
		if p.eof() {
			return Value{}, p.errorf("inner list: unexpected end of input")
		}
		switch c := p.cur(); {
		case c == ' ':
			p.skipSP()
		case c == ')':
		default:
			return Value{}, p.errorf("inner list: expected space or ')' after element")
		}
	}

	if p.eof() {
		return Value{}, p.errorf("inner list: unexpected end of input")
	}
	if p.cur() == ')' {
		p.advance()
		p.state = innerListParamsState(p.backState)
		p.backState = 0
		return Value{}, ErrEOF
	}

	var v Value
	if err := p.scanBareItem(&v); err != nil {
		return Value{}, err
	}
	p.state = stateInnerListBareItemParams
	return v, nil
}

// Param parses the next `;key` or `;key=bare-item` pair of a parameter
// tail, returning ErrEOF once the tail runs dry. Valid only in one of the
// *_PARAMS states, or positioned inside an unconsumed inner list (which
// Param silently walks to its ')' first).
func (p *Parser) Param() (Key, Value, error) {
	switch p.state {
	case stateItemInnerList, stateListInnerList, stateDictValueInnerList:
		if err := p.skipInnerList(); err != nil {
			return nil, Value{}, err
		}
	case stateItemParams, stateListItemParams, stateDictValueParams, stateInnerListBareItemParams:
	default:
		panic("sfv: Param called in a state that does not permit it")
	}

	if p.eof() || p.cur() != ';' {
		p.state = afterParamsState(p.state)
		return nil, Value{}, ErrEOF
	}
	p.advance() // consume ';'
	p.skipSP()  // SP only, not HTAB

	var key Key
	if err := p.scanKey(&key); err != nil {
		return nil, Value{}, err
	}

	if !p.eof() && p.cur() == '=' {
		p.advance()
		var v Value
		if err := p.scanBareItem(&v); err != nil {
			return nil, Value{}, err
		}
		return key, v, nil
	}
	return key, Value{typ: Boolean, boolean: true}, nil
}

// skipParams silently walks a parameter tail to its end, for callers that
// received a bare item or inner-list marker and chose not to inspect its
// parameters.
func (p *Parser) skipParams() error {
	for {
		_, _, err := p.Param()
		switch {
		case err == nil:
			continue
		case err == ErrEOF:
			return nil
		default:
			return err
		}
	}
}

// skipInnerList silently walks an inner list to its closing ')', for
// callers that received an InnerList marker and chose not to descend.
func (p *Parser) skipInnerList() error {
	for {
		_, err := p.InnerList()
		switch {
		case err == nil:
			continue
		case err == ErrEOF:
			return nil
		default:
			return err
		}
	}
}
