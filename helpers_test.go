package sfv

import (
	"bytes"
	"testing"
)

func TestUnescapeNoBackslashIsNoCopy(t *testing.T) {
	src := []byte("plain text")
	dst, err := Unescape(src, make([]byte, len(src)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if &dst[0] != &src[0] {
		t.Errorf("expected no-copy result sharing src's backing array")
	}
}

func TestUnescapeRoundTrip(t *testing.T) {
	for _, test := range []struct{ payload, want string }{
		{`hello \"world\"`, `hello "world"`},
		{`back\\slash`, `back\slash`},
		{`no escapes here`, `no escapes here`},
	} {
		got, err := Unescape([]byte(test.payload), make([]byte, len(test.payload)))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", test.payload, err)
		}
		if string(got) != test.want {
			t.Errorf("%q: expected %q, got %q", test.payload, test.want, got)
		}
	}
}

func TestUnescapeDanglingEscapeErrors(t *testing.T) {
	if _, err := Unescape([]byte(`dangling\`), make([]byte, 9)); err == nil {
		t.Errorf("expected error for dangling escape")
	}
}

func TestUnescapeDestinationTooSmall(t *testing.T) {
	if _, err := Unescape([]byte(`\"a`), make([]byte, 1)); err == nil {
		t.Errorf("expected error for undersized destination")
	}
}

func TestBase64DecodeKnownVectors(t *testing.T) {
	for _, test := range []struct{ payload, want string }{
		{"", ""},
		{"aGVsbG8", "hello"},
		{"aGVsbG8h", "hello!"},
		{"AAA", string([]byte{0, 0})},
	} {
		dst, err := Base64Decode([]byte(test.payload), make([]byte, len(test.payload)*3/4+2))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", test.payload, err)
		}
		if string(dst) != test.want {
			t.Errorf("%q: expected %q, got %q", test.payload, test.want, dst)
		}
	}
}

func TestBase64DecodeEmptyIsNoCopy(t *testing.T) {
	src := make([]byte, 0, 4)
	dst, err := Base64Decode(src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dst) != 0 {
		t.Errorf("expected empty result")
	}
	if cap(dst) != cap(src) {
		t.Errorf("expected no-copy result that is src itself")
	}
}

func TestBase64DecodeInvalidByte(t *testing.T) {
	if _, err := Base64Decode([]byte("a!b"), make([]byte, 4)); err == nil {
		t.Errorf("expected error for invalid base64 byte")
	}
}

func TestBase64DecodeDanglingByte(t *testing.T) {
	if _, err := Base64Decode([]byte("a"), make([]byte, 4)); err == nil {
		t.Errorf("expected error for a single dangling byte")
	}
}

func TestBase64RoundTripThroughItem(t *testing.T) {
	p := NewParser([]byte(":aGVsbG8h:"))
	v, err := p.Item()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, err := v.AsByteSequence()
	if err != nil {
		t.Fatalf("AsByteSequence: %v", err)
	}
	decoded, err := Base64Decode(payload, make([]byte, len(payload)*3/4+2))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded, []byte("hello!")) {
		t.Errorf("expected hello!, got %q", decoded)
	}
}
