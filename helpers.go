package sfv

import (
	"bytes"
	"fmt"
)

// Unescape writes the unescaped form of src — a quoted-string payload as
// returned by Value.AsString, with surrounding quotes already stripped —
// into dst, whose capacity must be at least len(src). Each `\x` escape is
// replaced by `x` (always `"` or `\`, since that is all the string
// scanner accepts). If src contains no backslash, the returned slice is
// src itself: no copy is performed.
func Unescape(src, dst []byte) ([]byte, error) {
	if cap(dst) < len(src) {
		return nil, fmt.Errorf("sfv: unescape: destination capacity %d too small for %d source bytes", cap(dst), len(src))
	}
	if bytes.IndexByte(src, '\\') < 0 {
		return src, nil
	}
	dst = dst[:0]
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\\' {
			i++
			if i >= len(src) {
				return nil, fmt.Errorf("sfv: unescape: dangling escape at byte %d", i-1)
			}
			c = src[i]
		}
		dst = append(dst, c)
	}
	return dst, nil
}

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
const invalidBase64 = 0xff

var base64LUT = buildBase64LUT()

func buildBase64LUT() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = invalidBase64
	}
	for i := 0; i < len(base64Alphabet); i++ {
		t[base64Alphabet[i]] = byte(i)
	}
	return t
}

// Base64Decode writes the decoded bytes of src into dst, whose capacity
// must be at least len(src)*3/4. src follows the parser's byte-sequence
// payload convention: the '=' padding the wire format required has
// already been stripped by the scanner, so src's length is a multiple of
// 4 only when the original sequence needed no padding; a final group of 2
// or 3 bytes (mod 4) decodes to 1 or 2 output bytes respectively, and a
// final group of 1 is never valid. If src is empty, the returned slice is
// src itself: no copy is performed.
func Base64Decode(src, dst []byte) ([]byte, error) {
	if len(src) == 0 {
		return src, nil
	}
	if len(src)%4 == 1 {
		return nil, fmt.Errorf("sfv: base64 decode: length %d leaves a dangling byte", len(src))
	}
	if cap(dst) < len(src)*3/4 {
		return nil, fmt.Errorf("sfv: base64 decode: destination capacity %d too small", cap(dst))
	}
	dst = dst[:0]

	i := 0
	for ; i+4 <= len(src); i += 4 {
		var s [4]byte
		for j := 0; j < 4; j++ {
			v := base64LUT[src[i+j]]
			if v == invalidBase64 {
				return nil, fmt.Errorf("sfv: base64 decode: invalid byte %q at offset %d", src[i+j], i+j)
			}
			s[j] = v
		}
		dst = append(dst, s[0]<<2|s[1]>>4, s[1]<<4|s[2]>>2, s[2]<<6|s[3])
	}

	switch len(src) - i {
	case 2:
		v0, v1, err := lutPair(src[i], src[i+1])
		if err != nil {
			return nil, err
		}
		dst = append(dst, v0<<2|v1>>4)
	case 3:
		v0, v1, err := lutPair(src[i], src[i+1])
		if err != nil {
			return nil, err
		}
		v2 := base64LUT[src[i+2]]
		if v2 == invalidBase64 {
			return nil, fmt.Errorf("sfv: base64 decode: invalid byte %q at offset %d", src[i+2], i+2)
		}
		dst = append(dst, v0<<2|v1>>4, v1<<4|v2>>2)
	}
	return dst, nil
}

func lutPair(a, b byte) (byte, byte, error) {
	va, vb := base64LUT[a], base64LUT[b]
	if va == invalidBase64 {
		return 0, 0, fmt.Errorf("sfv: base64 decode: invalid byte %q", a)
	}
	if vb == invalidBase64 {
		return 0, 0, fmt.Errorf("sfv: base64 decode: invalid byte %q", b)
	}
	return va, vb, nil
}
