package wire

import (
	"fmt"
	"strings"
)

// FormatToken renders b the way the HID helper prints bytes: "0x" followed by
// two lowercase hex digits.
func FormatToken(b byte) string {
	return fmt.Sprintf("0x%02x", b)
}

// FormatTokens renders every byte of buf.
func FormatTokens(buf []byte) []string {
	out := make([]string, len(buf))
	for i, b := range buf {
		out[i] = FormatToken(b)
	}
	return out
}

// ParseToken accepts an optional 0x prefix followed by exactly two hex digits.
func ParseToken(s string) (byte, error) {
	digits := s
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}
	if len(digits) != 2 {
		return 0, &MalformedTokenError{Token: s}
	}
	hi, ok1 := nibble(digits[0])
	lo, ok2 := nibble(digits[1])
	if !ok1 || !ok2 {
		return 0, &MalformedTokenError{Token: s}
	}
	return hi<<4 | lo, nil
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Tokenize splits helper output on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// Cursor is a read position shared by consecutive field decodes.
type Cursor struct {
	tokens []string
	pos    int
}

func NewCursor(tokens []string) *Cursor {
	return &Cursor{tokens: tokens}
}

func (c *Cursor) Remaining() int {
	return len(c.tokens) - c.pos
}

func (c *Cursor) Offset() int {
	return c.pos
}

// Skip advances past n tokens without parsing them.
func (c *Cursor) Skip(n int) error {
	if c.Remaining() < n {
		return &InsufficientDataError{Need: n, Have: c.Remaining()}
	}
	c.pos += n
	return nil
}

// Next parses the next n tokens into raw bytes, in token order. The cursor
// does not move when an error is returned.
func (c *Cursor) Next(n int) ([]byte, error) {
	if c.Remaining() < n {
		return nil, &InsufficientDataError{Need: n, Have: c.Remaining()}
	}
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := ParseToken(c.tokens[c.pos+i])
		if err != nil {
			err.(*MalformedTokenError).Index = c.pos + i
			return nil, err
		}
		buf[i] = b
	}
	c.pos += n
	return buf, nil
}
