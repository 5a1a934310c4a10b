package config

import "github.com/kevmo314/go-audiomoth/pkg/packets"

// Firmware defaults of the SimpleConfigurableDetector build.
func defaultMapping(v packets.Variant) packets.Mapping {
	m := packets.Mapping{
		"gain":              2,
		"clockDivider":      4,
		"acquisitionCycles": 16,
		"oversampleRate":    1,
		"sampleRate":        384000,
		"sampleRateDivider": 8,
		"enableLED":         true,
		"goertzelFreq":      1400,
		"goertzelThresh":    1000.0,
		"goertzelFactor":    0.99,
	}
	if v == packets.Triggered {
		m["time"] = 0
		m["sleepDuration"] = 5
		m["recordDuration"] = 55
		m["activeStartStopPeriods"] = 1
		m["timezone"] = 0
		m["useFilter"] = false
	}
	return m
}

// Standard AudioMoth acquisition settings per output sample rate.
func defaultSampleRates() map[string]packets.Mapping {
	rate := func(sampleRate, divider int) packets.Mapping {
		return packets.Mapping{
			"clockDivider":      4,
			"acquisitionCycles": 16,
			"oversampleRate":    1,
			"sampleRate":        sampleRate,
			"sampleRateDivider": divider,
		}
	}
	return map[string]packets.Mapping{
		"8000":   rate(384000, 48),
		"16000":  rate(384000, 24),
		"32000":  rate(384000, 12),
		"48000":  rate(384000, 8),
		"96000":  rate(384000, 4),
		"192000": rate(384000, 2),
		"256000": rate(256000, 1),
		"384000": rate(384000, 1),
	}
}

func defaultSchedule() []packets.Period {
	return []packets.Period{
		{StartMinutes: 0, StopMinutes: packets.MinutesPerDay - 1},
		{}, {}, {}, {},
	}
}
