package wire

import (
	"reflect"
	"testing"
)

func TestSchema_RoundTrip(t *testing.T) {
	s := Schema{
		Name:    "test",
		Framing: Reversed,
		Fields: []Field{
			{"gain", 1, Uint, BigEndian},
			{"sampleRate", 4, Uint, BigEndian},
			{"sleepDuration", 2, Uint, BigEndian},
			{"enableLED", 1, Bool, BigEndian},
			{"thresh", 4, Float32, BigEndian},
		},
	}
	if s.Size() != 12 {
		t.Errorf("Size = %d, want 12", s.Size())
	}
	in := []Value{UintValue(2), UintValue(384000), UintValue(5), BoolValue(true), FloatValue(1000)}
	toks, err := s.Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []string{
		"0x02",
		"0x00", "0xdc", "0x05", "0x00",
		"0x05", "0x00",
		"0x01",
		"0x00", "0x00", "0x7a", "0x44",
	}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("Encode = %v, want %v", toks, want)
	}
	out, err := s.Decode(NewCursor(toks))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("Decode = %+v, want %+v", out, in)
	}
}

func TestSchema_NativeIsReadOnly(t *testing.T) {
	s := Schema{Name: "status", Framing: Native, Fields: []Field{{"t", 4, Uint, LittleEndian}}}
	if _, err := s.Encode([]Value{UintValue(1)}); err == nil {
		t.Error("Encode on native schema succeeded")
	}
	out, err := s.Decode(NewCursor([]string{"0x01", "0x00", "0x00", "0x00"}))
	if err != nil {
		t.Fatal(err)
	}
	if out[0].Uint != 1 {
		t.Errorf("Decode = %d, want 1", out[0].Uint)
	}
}

func TestSchema_ValueCountMismatch(t *testing.T) {
	s := Schema{Name: "x", Fields: []Field{{"a", 1, Uint, BigEndian}}}
	if _, err := s.Encode(nil); err == nil {
		t.Error("Encode with no values succeeded")
	}
}
