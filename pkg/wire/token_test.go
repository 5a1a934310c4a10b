package wire

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseToken(t *testing.T) {
	good := map[string]byte{
		"0x1a": 0x1a,
		"0X1A": 0x1a,
		"ff":   0xff,
		"0x00": 0x00,
		"00":   0x00,
	}
	for in, want := range good {
		got, err := ParseToken(in)
		if err != nil {
			t.Errorf("ParseToken(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseToken(%q) = %02x, want %02x", in, got, want)
		}
	}

	for _, in := range []string{"", "0x", "0x1", "0x123", "1", "zz", "0xg0", "0y12"} {
		_, err := ParseToken(in)
		var malformed *MalformedTokenError
		if !errors.As(err, &malformed) {
			t.Errorf("ParseToken(%q) err = %v, want MalformedTokenError", in, err)
		}
	}
}

func TestFormatToken(t *testing.T) {
	if got := FormatToken(0xAB); got != "0xab" {
		t.Errorf("FormatToken(0xAB) = %q, want 0xab", got)
	}
	if got := FormatToken(5); got != "0x05" {
		t.Errorf("FormatToken(5) = %q, want 0x05", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("  0x06 0x01\n0x02\t0x03 \n")
	want := []string{"0x06", "0x01", "0x02", "0x03"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestCursor(t *testing.T) {
	c := NewCursor([]string{"0x06", "0x01", "0x02", "0x03"})
	if err := c.Skip(1); err != nil {
		t.Fatal(err)
	}
	buf, err := c.Next(2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(buf, []byte{1, 2}) {
		t.Errorf("Next(2) = % x", buf)
	}
	if c.Remaining() != 1 || c.Offset() != 3 {
		t.Errorf("Remaining = %d, Offset = %d", c.Remaining(), c.Offset())
	}
	if _, err := c.Next(2); err == nil {
		t.Error("Next past end succeeded")
	}
	if c.Remaining() != 1 {
		t.Errorf("failed Next moved the cursor")
	}
}
