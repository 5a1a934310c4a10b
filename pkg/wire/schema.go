package wire

import "fmt"

// Framing selects how a schema's multi-byte fields are laid out on the wire.
type Framing int

const (
	// Reversed is used by host-built command packets: every field is packed in
	// its declared order and then byte-reversed.
	Reversed Framing = iota
	// Native is used by device-built status packets: bytes are read in token
	// order and interpreted in the declared order.
	Native
)

// Schema is an ordered packet layout. The same Schema value drives encoding
// and decoding so the two cannot drift apart.
type Schema struct {
	Name    string
	Framing Framing
	Fields  []Field
}

// Size is the number of bytes the fields occupy, excluding any command byte.
func (s Schema) Size() int {
	n := 0
	for _, f := range s.Fields {
		n += f.Width
	}
	return n
}

// Validate checks every field descriptor.
func (s Schema) Validate() error {
	for _, f := range s.Fields {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("schema %s: %w", s.Name, err)
		}
	}
	return nil
}

// Encode renders values, one per field, in schema order.
func (s Schema) Encode(values []Value) ([]string, error) {
	if s.Framing != Reversed {
		return nil, fmt.Errorf("schema %s is read-only", s.Name)
	}
	if len(values) != len(s.Fields) {
		return nil, fmt.Errorf("schema %s: got %d values for %d fields", s.Name, len(values), len(s.Fields))
	}
	out := make([]string, 0, s.Size())
	for i, f := range s.Fields {
		toks, err := Encode(values[i], f)
		if err != nil {
			return nil, err
		}
		out = append(out, toks...)
	}
	return out, nil
}

// Decode reads one value per field from c.
func (s Schema) Decode(c *Cursor) ([]Value, error) {
	out := make([]Value, len(s.Fields))
	decode := Decode
	if s.Framing == Reversed {
		decode = DecodeReversed
	}
	for i, f := range s.Fields {
		v, err := decode(c, f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
