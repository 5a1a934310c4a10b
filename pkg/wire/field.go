package wire

import "fmt"

type Kind int

const (
	Uint Kind = iota
	Float32
	Bool
)

func (k Kind) String() string {
	switch k {
	case Uint:
		return "uint"
	case Float32:
		return "float32"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Order int

const (
	BigEndian Order = iota
	LittleEndian
)

func (o Order) String() string {
	if o == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// Field describes one scalar in a packet layout.
type Field struct {
	Name  string
	Width int
	Kind  Kind
	Order Order
}

// Validate reports an UnsupportedWidthError when the width has no numeric
// interpretation for the field's kind.
func (f Field) Validate() error {
	switch f.Kind {
	case Uint:
		switch f.Width {
		case 1, 2, 4, 8:
			return nil
		}
	case Float32:
		if f.Width == 4 {
			return nil
		}
	case Bool:
		if f.Width == 1 {
			return nil
		}
	}
	return &UnsupportedWidthError{Field: f.Name, Width: f.Width, Kind: f.Kind}
}

func (f Field) swapped() Field {
	if f.Order == BigEndian {
		f.Order = LittleEndian
	} else {
		f.Order = BigEndian
	}
	return f
}

// Value is a decoded scalar. Only the member matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Uint  uint64
	Float float32
	Bool  bool
}

func UintValue(v uint64) Value   { return Value{Kind: Uint, Uint: v} }
func FloatValue(v float32) Value { return Value{Kind: Float32, Float: v} }
func BoolValue(v bool) Value     { return Value{Kind: Bool, Bool: v} }

// Interface returns the value as uint64, float32 or bool.
func (v Value) Interface() any {
	switch v.Kind {
	case Float32:
		return v.Float
	case Bool:
		return v.Bool
	default:
		return v.Uint
	}
}

func (v Value) String() string {
	return fmt.Sprint(v.Interface())
}
