package packets

import "fmt"

// MissingFieldError is returned when a configuration mapping lacks a field
// the selected layout requires.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing configuration field %q", e.Field)
}

// InvalidScheduleLengthError is returned when a schedule does not hold exactly
// SchedulePeriods entries. The packet has no length prefix.
type InvalidScheduleLengthError struct {
	Got int
}

func (e *InvalidScheduleLengthError) Error() string {
	return fmt.Sprintf("schedule has %d periods, want %d", e.Got, SchedulePeriods)
}

// RangeError is returned when a value does not fit its field.
type RangeError struct {
	Field string
	Value any
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: value %v outside [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

// FieldTypeError is returned when a mapping holds a value of the wrong type.
type FieldTypeError struct {
	Field string
	Value any
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s: unsupported value %v (%T)", e.Field, e.Value, e.Value)
}

type UnknownVariantError struct {
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown configuration variant %q", e.Name)
}
