package sfv

import "strconv"

// maxIntegerDigits is the widest an integer, or an integer+fraction
// decimal, bare item may be.
const maxIntegerDigits = 15

// maxDecimalIntegerDigits is the widest an integer part may be for a
// following '.' to start a decimal; a wider integer part followed by '.'
// is a parse error.
const maxDecimalIntegerDigits = 12

// scanBareItem dispatches on the lead byte to the scanner for the
// matching bare-item grammar production. dst may be nil to scan for
// validity only, without materializing a Value.
func (p *Parser) scanBareItem(dst *Value) error {
	if p.eof() {
		return p.errorf("bare item: unexpected end of input")
	}
	switch c := p.cur(); {
	case c == '"':
		return p.scanString(dst)
	case c == '-' || isDigit(c):
		return p.scanNumber(dst)
	case c == ':':
		return p.scanByteSequence(dst)
	case c == '?':
		return p.scanBoolean(dst)
	case c == '*' || isAlpha(c):
		return p.scanToken(dst)
	default:
		return p.errorf("bare item: unrecognized lead byte %q", c)
	}
}

// scanKey reads a key: key-start followed by a maximal key-cont run.
func (p *Parser) scanKey(dst *Key) error {
	if p.eof() || !isKeyStart(p.cur()) {
		return p.errorf("key: expected a key-start byte")
	}
	start := p.pos
	p.advance()
	for !p.eof() && isKeyCont(p.cur()) {
		p.advance()
	}
	if dst != nil {
		*dst = Key(p.buf[start:p.pos])
	}
	return nil
}

// scanString reads a quoted string: `"` quoted-printable* `"`, with `\"`
// and `\\` the only legal escapes.
func (p *Parser) scanString(dst *Value) error {
	if p.eof() || p.cur() != '"' {
		return p.errorf("string: expected opening quote")
	}
	p.advance()
	start := p.pos
	escaped := false
	for {
		if p.eof() {
			return p.errorf("string: unterminated")
		}
		c := p.cur()
		switch {
		case c == '"':
			payload := p.buf[start:p.pos]
			p.advance()
			if dst != nil {
				*dst = Value{typ: String, bytes: payload, escaped: escaped}
			}
			return nil
		case c == '\\':
			p.advance()
			if p.eof() {
				return p.errorf("string: dangling escape")
			}
			n := p.cur()
			if n != '"' && n != '\\' {
				return p.errorf("string: invalid escape %q", n)
			}
			escaped = true
			p.advance()
		case !isQuotedPrintable(c):
			return p.errorf("string: invalid character %q", c)
		default:
			p.advance()
		}
	}
}

// scanToken reads a token: token-start followed by a maximal token-cont
// run.
func (p *Parser) scanToken(dst *Value) error {
	if p.eof() || !isTokenStart(p.cur()) {
		return p.errorf("token: expected a token-start byte")
	}
	start := p.pos
	p.advance()
	for !p.eof() && isTokenCont(p.cur()) {
		p.advance()
	}
	if dst != nil {
		*dst = Value{typ: Token, bytes: p.buf[start:p.pos]}
	}
	return nil
}

// scanNumber reads an integer or decimal bare item.
func (p *Parser) scanNumber(dst *Value) error {
	neg := false
	if !p.eof() && p.cur() == '-' {
		neg = true
		p.advance()
	}
	if p.eof() || !isDigit(p.cur()) {
		return p.errorf("number: expected a digit")
	}

	intStart := p.pos
	for !p.eof() && isDigit(p.cur()) {
		p.advance()
	}
	intDigits := p.pos - intStart
	if intDigits > maxIntegerDigits {
		return p.errorf("number: integer part has too many digits")
	}

	if !p.eof() && p.cur() == '.' && intDigits > maxDecimalIntegerDigits {
		return p.errorf("number: integer part has too many digits for a decimal")
	}

	if p.eof() || p.cur() != '.' {
		v, err := strconv.ParseInt(string(p.buf[intStart:p.pos]), 10, 64)
		if err != nil {
			return p.errorf("number: %v", err)
		}
		if neg {
			v = -v
		}
		if dst != nil {
			*dst = Value{typ: Integer, integer: v}
		}
		return nil
	}

	p.advance() // consume '.'
	fracStart := p.pos
	for !p.eof() && isDigit(p.cur()) {
		p.advance()
	}
	fracDigits := p.pos - fracStart
	if fracDigits == 0 {
		return p.errorf("number: expected a fractional digit after '.'")
	}
	if fracDigits > 3 {
		return p.errorf("number: too many fractional digits")
	}
	if intDigits+fracDigits > maxIntegerDigits {
		return p.errorf("number: too many digits for a decimal")
	}

	digits := string(p.buf[intStart:intStart+intDigits]) + string(p.buf[fracStart:p.pos])
	numerator, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return p.errorf("number: %v", err)
	}
	if neg {
		numerator = -numerator
	}
	var denominator int64
	switch fracDigits {
	case 1:
		denominator = 10
	case 2:
		denominator = 100
	case 3:
		denominator = 1000
	}
	if dst != nil {
		*dst = Value{typ: Decimal, numerator: numerator, denominator: denominator}
	}
	return nil
}

// scanByteSequence reads `:` base64-char* [`=`{1,2}] `:`, enforcing
// canonical base64 padding.
func (p *Parser) scanByteSequence(dst *Value) error {
	if p.eof() || p.cur() != ':' {
		return p.errorf("byte sequence: expected opening ':'")
	}
	p.advance()
	start := p.pos
	for !p.eof() && isBase64Char(p.cur()) {
		p.advance()
	}
	payload := p.buf[start:p.pos]

	if p.eof() {
		return p.errorf("byte sequence: unterminated")
	}

	switch p.cur() {
	case ':':
		if len(payload)%4 != 0 {
			return p.errorf("byte sequence: length not a multiple of 4")
		}
		p.advance()
		if dst != nil {
			*dst = Value{typ: ByteSequence, bytes: payload}
		}
		return nil
	case '=':
		r := len(payload) % 4
		if r != 2 && r != 3 {
			return p.errorf("byte sequence: invalid padding position")
		}
		last := payload[len(payload)-1]
		switch r {
		case 2:
			if !hasZeroLow4Bits(last) {
				return p.errorf("byte sequence: non-zero padding bits before '=='")
			}
			p.advance() // first '='
			if p.eof() || p.cur() != '=' {
				return p.errorf("byte sequence: expected second '=' pad")
			}
			p.advance() // second '='
		case 3:
			if !hasZeroLow2Bits(last) {
				return p.errorf("byte sequence: non-zero padding bits before '='")
			}
			p.advance() // single '='
		}
		if p.eof() || p.cur() != ':' {
			return p.errorf("byte sequence: expected terminating ':' after padding")
		}
		p.advance()
		if dst != nil {
			*dst = Value{typ: ByteSequence, bytes: payload}
		}
		return nil
	default:
		return p.errorf("byte sequence: invalid character %q", p.cur())
	}
}

// scanBoolean reads `?0` or `?1`.
func (p *Parser) scanBoolean(dst *Value) error {
	if p.eof() || p.cur() != '?' {
		return p.errorf("boolean: expected '?'")
	}
	p.advance()
	if p.eof() {
		return p.errorf("boolean: expected '0' or '1'")
	}
	c := p.cur()
	if c != '0' && c != '1' {
		return p.errorf("boolean: expected '0' or '1', got %q", c)
	}
	p.advance()
	if dst != nil {
		*dst = Value{typ: Boolean, boolean: c == '1'}
	}
	return nil
}
