package wire

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

var sampleRate = Field{Name: "sampleRate", Width: 4, Kind: Uint, Order: BigEndian}

func TestPack_SampleRateBigEndian(t *testing.T) {
	buf, err := Pack(UintValue(384000), sampleRate)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	want := []byte{0x00, 0x05, 0xdc, 0x00}
	if !reflect.DeepEqual(buf, want) {
		t.Errorf("Pack = % x, want % x", buf, want)
	}
}

func TestEncode_ReversesPackedBytes(t *testing.T) {
	toks, err := Encode(UintValue(384000), sampleRate)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []string{"0x00", "0xdc", "0x05", "0x00"}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("Encode = %v, want %v", toks, want)
	}
}

func TestEncode_Float32(t *testing.T) {
	f := Field{Name: "goertzelThresh", Width: 4, Kind: Float32, Order: BigEndian}
	toks, err := Encode(FloatValue(1000), f)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// 1000.0f = 0x447a0000, least significant byte first
	want := []string{"0x00", "0x00", "0x7a", "0x44"}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("Encode = %v, want %v", toks, want)
	}
}

func TestDecode_TokenOrder(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		field  Field
		want   Value
	}{
		{"u8", []string{"0x64"}, Field{"b", 1, Uint, LittleEndian}, UintValue(100)},
		{"u16 be", []string{"0x01", "0x02"}, Field{"h", 2, Uint, BigEndian}, UintValue(0x0102)},
		{"u16 le", []string{"0x01", "0x02"}, Field{"h", 2, Uint, LittleEndian}, UintValue(0x0201)},
		{"u32 le", []string{"0x00", "0xdc", "0x05", "0x00"}, Field{"l", 4, Uint, LittleEndian}, UintValue(384000)},
		{"u64 le", []string{"0x01", "0", "0", "0", "0", "0", "0", "0x80"}, Field{"q", 8, Uint, LittleEndian}, UintValue(0x8000000000000001)},
		{"bool zero", []string{"0x00"}, Field{"f", 1, Bool, BigEndian}, BoolValue(false)},
		{"bool nonzero", []string{"0x02"}, Field{"f", 1, Bool, BigEndian}, BoolValue(true)},
		{"float le", []string{"0x00", "0x00", "0x80", "0x3f"}, Field{"x", 4, Float32, LittleEndian}, FloatValue(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// bare "0" is not a valid token; pad the u64 case
			toks := make([]string, len(tt.tokens))
			for i, s := range tt.tokens {
				if s == "0" {
					s = "00"
				}
				toks[i] = s
			}
			got, err := Decode(NewCursor(toks), tt.field)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEncodeDecode_Inverse(t *testing.T) {
	values := []struct {
		field Field
		value Value
	}{
		{Field{"a", 1, Uint, BigEndian}, UintValue(0xfe)},
		{Field{"b", 2, Uint, BigEndian}, UintValue(1439)},
		{Field{"c", 4, Uint, BigEndian}, UintValue(0xdeadbeef)},
		{Field{"d", 8, Uint, BigEndian}, UintValue(0x0102030405060708)},
		{Field{"e", 4, Float32, BigEndian}, FloatValue(0.99)},
		{Field{"f", 1, Bool, BigEndian}, BoolValue(true)},
		{Field{"g", 4, Uint, LittleEndian}, UintValue(123456)},
	}
	for _, v := range values {
		toks, err := Encode(v.value, v.field)
		if err != nil {
			t.Fatalf("%s: Encode failed: %v", v.field.Name, err)
		}
		got, err := DecodeReversed(NewCursor(toks), v.field)
		if err != nil {
			t.Fatalf("%s: Decode failed: %v", v.field.Name, err)
		}
		if got != v.value {
			t.Errorf("%s: round trip = %+v, want %+v", v.field.Name, got, v.value)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(NewCursor(nil), sampleRate)
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("empty input: err = %v, want InsufficientDataError", err)
	}
	if insufficient.Field != "sampleRate" || insufficient.Need != 4 || insufficient.Have != 0 {
		t.Errorf("InsufficientDataError = %+v", insufficient)
	}

	_, err = Decode(NewCursor([]string{"0x01", "0xzz", "0x00", "0x00"}), sampleRate)
	var malformed *MalformedTokenError
	if !errors.As(err, &malformed) {
		t.Fatalf("bad token: err = %v, want MalformedTokenError", err)
	}
	if malformed.Index != 1 || malformed.Token != "0xzz" {
		t.Errorf("MalformedTokenError = %+v", malformed)
	}

	_, err = Decode(NewCursor([]string{"0x00", "0x00", "0x00"}), Field{"w", 3, Uint, BigEndian})
	var width *UnsupportedWidthError
	if !errors.As(err, &width) {
		t.Fatalf("width 3: err = %v, want UnsupportedWidthError", err)
	}
}

func TestField_Validate(t *testing.T) {
	bad := []Field{
		{"f", 2, Float32, BigEndian},
		{"b", 4, Bool, BigEndian},
		{"u", 3, Uint, BigEndian},
		{"u", 0, Uint, BigEndian},
	}
	for _, f := range bad {
		if err := f.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", f)
		}
	}
}

func TestPack_KindMismatch(t *testing.T) {
	_, err := Pack(FloatValue(1), sampleRate)
	var mismatch *KindMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want KindMismatchError", err)
	}
}

func TestPack_Overflow(t *testing.T) {
	tests := []struct {
		field Field
		value uint64
	}{
		{Field{"a", 1, Uint, BigEndian}, 0x1ff},
		{Field{"b", 2, Uint, BigEndian}, 70000},
		{Field{"c", 4, Uint, LittleEndian}, 1 << 32},
	}
	for _, tt := range tests {
		toks, err := Encode(UintValue(tt.value), tt.field)
		var overflow *OverflowError
		if !errors.As(err, &overflow) {
			t.Errorf("%s: Encode(%d) = %v, %v, want OverflowError", tt.field.Name, tt.value, toks, err)
			continue
		}
		if overflow.Width != tt.field.Width || overflow.Value != tt.value {
			t.Errorf("%s: OverflowError = %+v", tt.field.Name, overflow)
		}
	}

	// the largest value of each width still packs
	for _, w := range []int{1, 2, 4} {
		limit := uint64(1)<<(8*w) - 1
		if _, err := Pack(UintValue(limit), Field{"m", w, Uint, BigEndian}); err != nil {
			t.Errorf("Pack(%d, width %d) failed: %v", limit, w, err)
		}
	}
}

func TestEncode_NaNBitsSurvive(t *testing.T) {
	f := Field{"x", 4, Float32, BigEndian}
	nan := math.Float32frombits(0x7fc00001)
	toks, err := Encode(FloatValue(nan), f)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeReversed(NewCursor(toks), f)
	if err != nil {
		t.Fatal(err)
	}
	if math.Float32bits(got.Float) != 0x7fc00001 {
		t.Errorf("bits = %08x, want 7fc00001", math.Float32bits(got.Float))
	}
}
