package sfv

import (
	"fmt"
	"testing"
)

func TestTypeStrings(t *testing.T) {
	for _, test := range []struct {
		input    Type
		expected string
	}{
		{Invalid, typeStrings[Invalid]},
		{Integer, typeStrings[Integer]},
		{Decimal, typeStrings[Decimal]},
		{String, typeStrings[String]},
		{Token, typeStrings[Token]},
		{ByteSequence, typeStrings[ByteSequence]},
		{Boolean, typeStrings[Boolean]},
		{InnerList, typeStrings[InnerList]},
		{numTypes, "<unknown>"},
		{100, "<unknown>"},
		{-1, "<unknown>"},
	} {
		t.Run(fmt.Sprintf("%v", test.input), func(t *testing.T) {
			actual := test.input.String()
			if test.expected != actual {
				t.Errorf("expected %v got %v", test.expected, actual)
			}
		})
	}
}

func TestAsAccessorsRejectWrongType(t *testing.T) {
	p := NewParser([]byte(`"a string"`))
	v, err := p.Item()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Type() != String {
		t.Fatalf("expected String, got %v", v.Type())
	}
	if _, err := v.AsInteger(); err == nil {
		t.Errorf("AsInteger on a string: expected error")
	}
	if _, _, err := v.AsDecimal(); err == nil {
		t.Errorf("AsDecimal on a string: expected error")
	}
	if _, err := v.AsToken(); err == nil {
		t.Errorf("AsToken on a string: expected error")
	}
	if _, err := v.AsByteSequence(); err == nil {
		t.Errorf("AsByteSequence on a string: expected error")
	}
	if _, err := v.AsBoolean(); err == nil {
		t.Errorf("AsBoolean on a string: expected error")
	}
}

func TestValueStringRendering(t *testing.T) {
	for _, test := range []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"-1.500", "-1500/1000"},
		{`"hi"`, `"hi"`},
		{"a-token", "a-token"},
		{"?1", "?1"},
		{"?0", "?0"},
		{":aGk=:", ":aGk:"},
	} {
		p := NewParser([]byte(test.input))
		v, err := p.Item()
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", test.input, err)
		}
		if got := v.String(); got != test.want {
			t.Errorf("%q: expected %q, got %q", test.input, test.want, got)
		}
	}
}

func TestKeyString(t *testing.T) {
	k := Key("my-key")
	if k.String() != "my-key" {
		t.Errorf("expected my-key, got %q", k.String())
	}
}
