package packets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePeriods() []Period {
	return []Period{
		{StartMinutes: 0, StopMinutes: 60},
		{StartMinutes: 300, StopMinutes: 420},
		{StartMinutes: 1080, StopMinutes: 1439},
		{StartMinutes: 700, StopMinutes: 600},
		{StartMinutes: 0, StopMinutes: 0},
	}
}

func TestEncodeSchedule(t *testing.T) {
	toks, err := EncodeSchedule(samplePeriods())
	require.NoError(t, err)
	require.Len(t, toks, 1+SchedulePeriods*4)
	assert.Equal(t, "0x10", toks[0])
	// 300 = 0x012c, 420 = 0x01a4, least significant byte first
	assert.Equal(t, []string{"0x2c", "0x01", "0xa4", "0x01"}, toks[5:9])
}

func TestSchedule_RoundTrip(t *testing.T) {
	in := samplePeriods()
	toks, err := EncodeSchedule(in)
	require.NoError(t, err)

	out, err := DecodeSchedule(toks)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeSchedule_Length(t *testing.T) {
	for _, n := range []int{0, 4, 6} {
		periods := make([]Period, n)
		_, err := EncodeSchedule(periods)
		var length *InvalidScheduleLengthError
		require.True(t, errors.As(err, &length), "n=%d err=%v", n, err)
		assert.Equal(t, n, length.Got)
	}
}

func TestEncodeSchedule_MinuteRange(t *testing.T) {
	periods := samplePeriods()
	periods[2].StopMinutes = MinutesPerDay
	_, err := EncodeSchedule(periods)
	assert.True(t, isRange(err), "err = %v", err)
}

func TestDecodeSchedule_Truncated(t *testing.T) {
	toks, err := EncodeSchedule(samplePeriods())
	require.NoError(t, err)
	_, err = DecodeSchedule(toks[:15])
	assert.Error(t, err)
}

func TestScheduleFromMap(t *testing.T) {
	m := Mapping{
		"startStopPeriods": []any{
			map[string]any{"startMinutes": 60, "stopMinutes": 120},
			map[string]any{"startMinutes": float64(600), "stopMinutes": 660},
		},
	}
	periods, err := ScheduleFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, []Period{{60, 120}, {600, 660}}, periods)

	// the length check belongs to the encoder, not the loader
	_, err = EncodeSchedule(periods)
	var length *InvalidScheduleLengthError
	assert.True(t, errors.As(err, &length))
}

func TestScheduleFromMap_Errors(t *testing.T) {
	_, err := ScheduleFromMap(Mapping{})
	assert.True(t, isMissing(err))

	_, err = ScheduleFromMap(Mapping{"startStopPeriods": []any{map[string]any{"startMinutes": 1}}})
	assert.True(t, isMissing(err))

	_, err = ScheduleFromMap(Mapping{"startStopPeriods": []any{map[string]any{"startMinutes": 1, "stopMinutes": 1500}}})
	assert.True(t, isRange(err))

	_, err = ScheduleFromMap(Mapping{"startStopPeriods": "always"})
	assert.True(t, isType(err))
}

func TestPeriod_String(t *testing.T) {
	assert.Equal(t, "05:00-07:00", Period{300, 420}.String())
}
