package packets

import (
	"fmt"
	"math"
	"strings"

	"github.com/kevmo314/go-audiomoth/pkg/wire"
)

// Variant selects one of the two configuration layouts shipped with the
// AudioMoth detector firmwares.
type Variant int

const (
	// Simple is the SimpleConfigurableDetector layout.
	Simple Variant = iota
	// Triggered is the TriggeredRecording layout, which adds the clock, duty
	// cycle, timezone and schedule count fields.
	Triggered
)

func (v Variant) String() string {
	switch v {
	case Simple:
		return "simple"
	case Triggered:
		return "triggered"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "simple":
		return Simple, nil
	case "triggered", "extended":
		return Triggered, nil
	}
	return 0, &UnknownVariantError{Name: s}
}

// Configuration holds the union of both layouts' fields. Fields that the
// selected variant does not carry are ignored on encode and left zero on
// decode.
type Configuration struct {
	Time                   uint32
	Gain                   uint8
	ClockDivider           uint8
	AcquisitionCycles      uint8
	OversampleRate         uint8
	SampleRate             uint32
	SampleRateDivider      uint8
	SleepDuration          uint16
	RecordDuration         uint16
	EnableLED              bool
	ActiveStartStopPeriods uint8
	Timezone               int8
	UseFilter              bool
	GoertzelFreq           uint32
	GoertzelThresh         float32
	GoertzelFactor         float32
}

// EffectiveSampleRate is the rate after decimation by SampleRateDivider.
func (c *Configuration) EffectiveSampleRate() float64 {
	if c.SampleRateDivider == 0 {
		return float64(c.SampleRate)
	}
	return float64(c.SampleRate) / float64(c.SampleRateDivider)
}

// binding ties a wire field to the Configuration member it reads and writes.
type binding struct {
	field  wire.Field
	signed bool
	get    func(*Configuration) wire.Value
	set    func(*Configuration, wire.Value)
}

func field(name string, width int, kind wire.Kind) wire.Field {
	return wire.Field{Name: name, Width: width, Kind: kind, Order: wire.BigEndian}
}

func u8(name string, p func(*Configuration) *uint8) binding {
	return binding{
		field: field(name, 1, wire.Uint),
		get:   func(c *Configuration) wire.Value { return wire.UintValue(uint64(*p(c))) },
		set:   func(c *Configuration, v wire.Value) { *p(c) = uint8(v.Uint) },
	}
}

func u16(name string, p func(*Configuration) *uint16) binding {
	return binding{
		field: field(name, 2, wire.Uint),
		get:   func(c *Configuration) wire.Value { return wire.UintValue(uint64(*p(c))) },
		set:   func(c *Configuration, v wire.Value) { *p(c) = uint16(v.Uint) },
	}
}

func u32(name string, p func(*Configuration) *uint32) binding {
	return binding{
		field: field(name, 4, wire.Uint),
		get:   func(c *Configuration) wire.Value { return wire.UintValue(uint64(*p(c))) },
		set:   func(c *Configuration, v wire.Value) { *p(c) = uint32(v.Uint) },
	}
}

// i8 is a signed quantity sent as its raw two's complement byte.
func i8(name string, p func(*Configuration) *int8) binding {
	return binding{
		field:  field(name, 1, wire.Uint),
		signed: true,
		get:    func(c *Configuration) wire.Value { return wire.UintValue(uint64(uint8(*p(c)))) },
		set:    func(c *Configuration, v wire.Value) { *p(c) = int8(uint8(v.Uint)) },
	}
}

func f32(name string, p func(*Configuration) *float32) binding {
	return binding{
		field: field(name, 4, wire.Float32),
		get:   func(c *Configuration) wire.Value { return wire.FloatValue(*p(c)) },
		set:   func(c *Configuration, v wire.Value) { *p(c) = v.Float },
	}
}

func flag(name string, p func(*Configuration) *bool) binding {
	return binding{
		field: field(name, 1, wire.Bool),
		get:   func(c *Configuration) wire.Value { return wire.BoolValue(*p(c)) },
		set:   func(c *Configuration, v wire.Value) { *p(c) = v.Bool },
	}
}

var (
	bindTime              = u32("time", func(c *Configuration) *uint32 { return &c.Time })
	bindGain              = u8("gain", func(c *Configuration) *uint8 { return &c.Gain })
	bindClockDivider      = u8("clockDivider", func(c *Configuration) *uint8 { return &c.ClockDivider })
	bindAcquisitionCycles = u8("acquisitionCycles", func(c *Configuration) *uint8 { return &c.AcquisitionCycles })
	bindOversampleRate    = u8("oversampleRate", func(c *Configuration) *uint8 { return &c.OversampleRate })
	bindSampleRate        = u32("sampleRate", func(c *Configuration) *uint32 { return &c.SampleRate })
	bindSampleRateDivider = u8("sampleRateDivider", func(c *Configuration) *uint8 { return &c.SampleRateDivider })
	bindSleepDuration     = u16("sleepDuration", func(c *Configuration) *uint16 { return &c.SleepDuration })
	bindRecordDuration    = u16("recordDuration", func(c *Configuration) *uint16 { return &c.RecordDuration })
	bindEnableLED         = flag("enableLED", func(c *Configuration) *bool { return &c.EnableLED })
	bindActivePeriods     = u8("activeStartStopPeriods", func(c *Configuration) *uint8 { return &c.ActiveStartStopPeriods })
	bindTimezone          = i8("timezone", func(c *Configuration) *int8 { return &c.Timezone })
	bindUseFilter         = flag("useFilter", func(c *Configuration) *bool { return &c.UseFilter })
	bindGoertzelFreq      = u32("goertzelFreq", func(c *Configuration) *uint32 { return &c.GoertzelFreq })
	bindGoertzelThresh    = f32("goertzelThresh", func(c *Configuration) *float32 { return &c.GoertzelThresh })
	bindGoertzelFactor    = f32("goertzelFactor", func(c *Configuration) *float32 { return &c.GoertzelFactor })
)

// Wire order of each layout. Changing either list is a protocol change.
var layouts = map[Variant][]binding{
	Simple: {
		bindGain,
		bindClockDivider,
		bindAcquisitionCycles,
		bindOversampleRate,
		bindSampleRate,
		bindSampleRateDivider,
		bindEnableLED,
		bindGoertzelFreq,
		bindGoertzelThresh,
		bindGoertzelFactor,
	},
	Triggered: {
		bindTime,
		bindGain,
		bindClockDivider,
		bindAcquisitionCycles,
		bindOversampleRate,
		bindSampleRate,
		bindSampleRateDivider,
		bindSleepDuration,
		bindRecordDuration,
		bindEnableLED,
		bindActivePeriods,
		bindTimezone,
		bindUseFilter,
		bindGoertzelFreq,
		bindGoertzelThresh,
		bindGoertzelFactor,
	},
}

func layout(v Variant) ([]binding, error) {
	l, ok := layouts[v]
	if !ok {
		return nil, &UnknownVariantError{Name: v.String()}
	}
	return l, nil
}

// Schema returns the wire layout of the variant, without the command byte.
func Schema(v Variant) (wire.Schema, error) {
	l, err := layout(v)
	if err != nil {
		return wire.Schema{}, err
	}
	s := wire.Schema{Name: "configuration/" + v.String(), Framing: wire.Reversed}
	for _, b := range l {
		s.Fields = append(s.Fields, b.field)
	}
	return s, nil
}

// FieldNames lists the mapping keys the variant requires, in wire order.
func FieldNames(v Variant) []string {
	l, _ := layout(v)
	names := make([]string, len(l))
	for i, b := range l {
		names[i] = b.field.Name
	}
	return names
}

// EncodeConfiguration renders a set-configuration command.
func EncodeConfiguration(c Configuration, v Variant) ([]string, error) {
	l, err := layout(v)
	if err != nil {
		return nil, err
	}
	s, _ := Schema(v)
	values := make([]wire.Value, len(l))
	for i, b := range l {
		values[i] = b.get(&c)
	}
	body, err := s.Encode(values)
	if err != nil {
		return nil, err
	}
	return append(CommandSetConfiguration.Request(), body...), nil
}

// EncodeConfigurationMap converts m, which must already be merged with a
// complete set of defaults, and renders it.
func EncodeConfigurationMap(m Mapping, v Variant) ([]string, error) {
	c, err := ConfigurationFromMap(m, v)
	if err != nil {
		return nil, err
	}
	return EncodeConfiguration(*c, v)
}

// DecodeConfiguration parses a set-configuration response: the echoed command
// byte followed by the layout the device accepted.
func DecodeConfiguration(tokens []string, v Variant) (*Configuration, error) {
	l, err := layout(v)
	if err != nil {
		return nil, err
	}
	s, _ := Schema(v)
	cur, err := skipEcho(tokens)
	if err != nil {
		return nil, err
	}
	values, err := s.Decode(cur)
	if err != nil {
		return nil, err
	}
	c := &Configuration{}
	for i, b := range l {
		b.set(c, values[i])
	}
	return c, nil
}

// ConfigurationFromMap extracts the fields of variant v from m.
func ConfigurationFromMap(m Mapping, v Variant) (*Configuration, error) {
	l, err := layout(v)
	if err != nil {
		return nil, err
	}
	c := &Configuration{}
	for _, b := range l {
		raw, ok := m[b.field.Name]
		if !ok || raw == nil {
			return nil, &MissingFieldError{Field: b.field.Name}
		}
		val, err := b.convert(raw)
		if err != nil {
			return nil, err
		}
		b.set(c, val)
	}
	return c, nil
}

func (b binding) convert(raw any) (wire.Value, error) {
	name := b.field.Name
	switch b.field.Kind {
	case wire.Bool:
		x, ok := asBool(raw)
		if !ok {
			return wire.Value{}, &FieldTypeError{Field: name, Value: raw}
		}
		return wire.BoolValue(x), nil
	case wire.Float32:
		x, ok := asFloat(raw)
		if !ok {
			return wire.Value{}, &FieldTypeError{Field: name, Value: raw}
		}
		if math.Abs(x) > math.MaxFloat32 && !math.IsInf(x, 0) {
			return wire.Value{}, &RangeError{Field: name, Value: raw, Min: -math.MaxFloat32, Max: math.MaxFloat32}
		}
		return wire.FloatValue(float32(x)), nil
	}
	x, ok := asInt(raw)
	if !ok {
		return wire.Value{}, &FieldTypeError{Field: name, Value: raw}
	}
	var lo, hi int64 = 0, 1<<(8*b.field.Width) - 1
	if b.field.Width == 8 {
		hi = math.MaxInt64
	}
	if b.signed {
		lo = -1 << (8*b.field.Width - 1)
	}
	if x < lo || x > hi {
		return wire.Value{}, &RangeError{Field: name, Value: raw, Min: float64(lo), Max: float64(hi)}
	}
	return wire.UintValue(uint64(x) & uint64(hi)), nil
}

// Map renders the variant's fields as a Mapping, the inverse of
// ConfigurationFromMap.
func (c *Configuration) Map(v Variant) Mapping {
	l, _ := layout(v)
	m := make(Mapping, len(l))
	for _, b := range l {
		val := b.get(c)
		switch {
		case b.signed:
			m[b.field.Name] = int64(int8(uint8(val.Uint)))
		case val.Kind == wire.Uint:
			m[b.field.Name] = int64(val.Uint)
		default:
			m[b.field.Name] = val.Interface()
		}
	}
	return m
}
