package packets

import (
	"math"
	"sort"
)

// Mapping is the loosely typed, human editable form of a packet: field name to
// value, as read from a JSON or YAML file or built from command line options.
type Mapping map[string]any

// Clone returns a shallow copy of m.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a copy of m with every key of over applied on top.
func (m Mapping) Merge(over Mapping) Mapping {
	out := m.Clone()
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Keys returns the keys of m in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), uint64(v) <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	case float32:
		return asInt(float64(v))
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	if i, ok := asInt(raw); ok {
		return float64(i), true
	}
	return 0, false
}

func asBool(raw any) (bool, bool) {
	if b, ok := raw.(bool); ok {
		return b, true
	}
	if i, ok := asInt(raw); ok {
		return i != 0, true
	}
	return false, false
}
