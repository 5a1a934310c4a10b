package packets

import (
	"fmt"

	"github.com/kevmo314/go-audiomoth/pkg/wire"
)

const (
	// SchedulePeriods is the fixed number of slots in a schedule packet.
	SchedulePeriods = 5
	MinutesPerDay   = 1440
)

// Period is an active recording window, in minutes after midnight.
type Period struct {
	StartMinutes uint16 `json:"startMinutes" yaml:"startMinutes"`
	StopMinutes  uint16 `json:"stopMinutes" yaml:"stopMinutes"`
}

func (p Period) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", p.StartMinutes/60, p.StartMinutes%60, p.StopMinutes/60, p.StopMinutes%60)
}

var periodSchema = wire.Schema{
	Name:    "period",
	Framing: wire.Reversed,
	Fields: []wire.Field{
		{Name: "startMinutes", Width: 2, Kind: wire.Uint, Order: wire.BigEndian},
		{Name: "stopMinutes", Width: 2, Kind: wire.Uint, Order: wire.BigEndian},
	},
}

// EncodeSchedule renders a set-schedule command. Slot order is preserved.
func EncodeSchedule(periods []Period) ([]string, error) {
	if len(periods) != SchedulePeriods {
		return nil, &InvalidScheduleLengthError{Got: len(periods)}
	}
	out := CommandSetSchedule.Request()
	for i, p := range periods {
		for _, m := range []uint16{p.StartMinutes, p.StopMinutes} {
			if m >= MinutesPerDay {
				return nil, &RangeError{Field: fmt.Sprintf("period %d", i), Value: m, Min: 0, Max: MinutesPerDay - 1}
			}
		}
		toks, err := periodSchema.Encode([]wire.Value{
			wire.UintValue(uint64(p.StartMinutes)),
			wire.UintValue(uint64(p.StopMinutes)),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, toks...)
	}
	return out, nil
}

// DecodeSchedule parses a get-schedule or set-schedule response. Periods are
// returned as the device reports them, without checking start < stop.
func DecodeSchedule(tokens []string) ([]Period, error) {
	cur, err := skipEcho(tokens)
	if err != nil {
		return nil, err
	}
	periods := make([]Period, SchedulePeriods)
	for i := range periods {
		values, err := periodSchema.Decode(cur)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", i, err)
		}
		periods[i] = Period{StartMinutes: uint16(values[0].Uint), StopMinutes: uint16(values[1].Uint)}
	}
	return periods, nil
}

// ScheduleFromMap reads the "startStopPeriods" list of a schedule file.
func ScheduleFromMap(m Mapping) ([]Period, error) {
	raw, ok := m["startStopPeriods"]
	if !ok {
		return nil, &MissingFieldError{Field: "startStopPeriods"}
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &FieldTypeError{Field: "startStopPeriods", Value: raw}
	}
	periods := make([]Period, 0, len(list))
	for i, item := range list {
		entry, ok := asMapping(item)
		if !ok {
			return nil, &FieldTypeError{Field: fmt.Sprintf("startStopPeriods[%d]", i), Value: item}
		}
		var p Period
		for _, f := range []struct {
			key string
			dst *uint16
		}{
			{"startMinutes", &p.StartMinutes},
			{"stopMinutes", &p.StopMinutes},
		} {
			v, ok := entry[f.key]
			if !ok {
				return nil, &MissingFieldError{Field: fmt.Sprintf("startStopPeriods[%d].%s", i, f.key)}
			}
			n, ok := asInt(v)
			if !ok {
				return nil, &FieldTypeError{Field: f.key, Value: v}
			}
			if n < 0 || n >= MinutesPerDay {
				return nil, &RangeError{Field: f.key, Value: v, Min: 0, Max: MinutesPerDay - 1}
			}
			*f.dst = uint16(n)
		}
		periods = append(periods, p)
	}
	return periods, nil
}

func asMapping(v any) (Mapping, bool) {
	switch m := v.(type) {
	case Mapping:
		return m, true
	case map[string]any:
		return Mapping(m), true
	}
	return nil, false
}
