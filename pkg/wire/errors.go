package wire

import "fmt"

// MalformedTokenError is returned when a token is not a two digit hex byte.
type MalformedTokenError struct {
	Index int
	Token string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed token %q at index %d", e.Token, e.Index)
}

// InsufficientDataError is returned when fewer tokens remain than a field needs.
type InsufficientDataError struct {
	Field string
	Need  int
	Have  int
}

func (e *InsufficientDataError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("insufficient data: need %d tokens, have %d", e.Need, e.Have)
	}
	return fmt.Sprintf("insufficient data for %s: need %d tokens, have %d", e.Field, e.Need, e.Have)
}

// UnsupportedWidthError indicates a broken field descriptor, not bad input.
type UnsupportedWidthError struct {
	Field string
	Width int
	Kind  Kind
}

func (e *UnsupportedWidthError) Error() string {
	return fmt.Sprintf("field %s: unsupported width %d for %s", e.Field, e.Width, e.Kind)
}

// KindMismatchError is returned when a value of one kind is encoded into a
// field of another.
type KindMismatchError struct {
	Field string
	Want  Kind
	Got   Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("field %s: value kind %s, want %s", e.Field, e.Got, e.Want)
}

// OverflowError is returned when an integer does not fit its field.
type OverflowError struct {
	Field string
	Value uint64
	Width int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("field %s: value %d does not fit in %d bytes", e.Field, e.Value, e.Width)
}
