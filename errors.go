package sfv

import "errors"

var (
	// ErrParse signals that the input is malformed at or near the cursor.
	// Once returned, the Parser that produced it must not be used again.
	ErrParse = errors.New("sfv: parse error")

	// ErrEOF signals that the current container (or, for Item, the whole
	// value) has been fully traversed. It is not an error condition; it is
	// the normal termination signal of a top-level or sub iterator.
	ErrEOF = errors.New("sfv: end of structure")

	// ErrType signals that a Value accessor was called for a kind other
	// than the one the Value actually holds.
	ErrType = errors.New("sfv: type error")
)
