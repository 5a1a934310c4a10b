// Package wire converts between the hex token stream spoken by the HID helper
// and typed scalar values.
package wire

import (
	"encoding/binary"
	"math"
)

func byteOrder(o Order) binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Pack writes v into f.Width bytes using f.Order. No reversal is applied.
func Pack(v Value, f Field) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if v.Kind != f.Kind {
		return nil, &KindMismatchError{Field: f.Name, Want: f.Kind, Got: v.Kind}
	}
	buf := make([]byte, f.Width)
	bo := byteOrder(f.Order)
	switch f.Kind {
	case Bool:
		if v.Bool {
			buf[0] = 1
		}
	case Float32:
		bo.PutUint32(buf, math.Float32bits(v.Float))
	case Uint:
		if f.Width < 8 && v.Uint>>(8*f.Width) != 0 {
			return nil, &OverflowError{Field: f.Name, Value: v.Uint, Width: f.Width}
		}
		switch f.Width {
		case 1:
			buf[0] = uint8(v.Uint)
		case 2:
			bo.PutUint16(buf, uint16(v.Uint))
		case 4:
			bo.PutUint32(buf, uint32(v.Uint))
		case 8:
			bo.PutUint64(buf, v.Uint)
		}
	}
	return buf, nil
}

// Unpack is the inverse of Pack.
func Unpack(buf []byte, f Field) (Value, error) {
	if err := f.Validate(); err != nil {
		return Value{}, err
	}
	if len(buf) != f.Width {
		return Value{}, &InsufficientDataError{Field: f.Name, Need: f.Width, Have: len(buf)}
	}
	bo := byteOrder(f.Order)
	switch f.Kind {
	case Bool:
		return BoolValue(buf[0] != 0), nil
	case Float32:
		return FloatValue(math.Float32frombits(bo.Uint32(buf))), nil
	}
	switch f.Width {
	case 1:
		return UintValue(uint64(buf[0])), nil
	case 2:
		return UintValue(uint64(bo.Uint16(buf))), nil
	case 4:
		return UintValue(uint64(bo.Uint32(buf))), nil
	default:
		return UintValue(bo.Uint64(buf)), nil
	}
}

// Encode packs v per f and emits the packed bytes reversed, which is how the
// device firmware expects every multi-byte field to arrive.
func Encode(v Value, f Field) ([]string, error) {
	buf, err := Pack(v, f)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return FormatTokens(buf), nil
}

// Decode consumes f.Width tokens from c and interprets them in the order they
// appear, with f.Order deciding where the most significant byte sits.
func Decode(c *Cursor, f Field) (Value, error) {
	if err := f.Validate(); err != nil {
		return Value{}, err
	}
	buf, err := c.Next(f.Width)
	if err != nil {
		if e, ok := err.(*InsufficientDataError); ok {
			e.Field = f.Name
		}
		return Value{}, err
	}
	return Unpack(buf, f)
}

// DecodeReversed reads a field written by Encode with the same descriptor.
func DecodeReversed(c *Cursor, f Field) (Value, error) {
	return Decode(c, f.swapped())
}
