// Package config loads the configurator profile: the default device
// configuration, the per sample rate acquisition table and the schedule.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kevmo314/go-audiomoth/pkg/packets"
)

// Paths points at the profile files. Empty paths use the built-in values.
// JSON files are read as YAML, which is a superset.
type Paths struct {
	Config         string
	Configurations string
	Schedule       string
}

type UnknownSampleRateError struct {
	Rate int
}

func (e *UnknownSampleRateError) Error() string {
	return fmt.Sprintf("no configuration for sample rate %d", e.Rate)
}

// Profile is immutable once built; accessors hand out copies.
type Profile struct {
	variant  packets.Variant
	defaults packets.Mapping
	rates    map[string]packets.Mapping
	schedule []packets.Period
}

// Defaults returns the built-in profile for v.
func Defaults(v packets.Variant) *Profile {
	return &Profile{
		variant:  v,
		defaults: defaultMapping(v),
		rates:    defaultSampleRates(),
		schedule: defaultSchedule(),
	}
}

// Load reads every non-empty path in p over the built-in profile. The default
// configuration must name every field the variant carries.
func Load(v packets.Variant, p Paths) (*Profile, error) {
	prof := Defaults(v)

	if p.Config != "" {
		m, err := readMapping(p.Config)
		if err != nil {
			return nil, err
		}
		if _, err := packets.ConfigurationFromMap(m, v); err != nil {
			return nil, fmt.Errorf("config %s: %w", p.Config, err)
		}
		prof.defaults = m
	}

	if p.Configurations != "" {
		var rates map[string]packets.Mapping
		if err := readYAML(p.Configurations, &rates); err != nil {
			return nil, err
		}
		for k := range rates {
			if _, err := strconv.Atoi(k); err != nil {
				return nil, fmt.Errorf("configurations %s: bad sample rate key %q", p.Configurations, k)
			}
		}
		prof.rates = rates
	}

	if p.Schedule != "" {
		m, err := readMapping(p.Schedule)
		if err != nil {
			return nil, err
		}
		periods, err := packets.ScheduleFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", p.Schedule, err)
		}
		prof.schedule = periods
	}

	return prof, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return nil
}

func readMapping(path string) (packets.Mapping, error) {
	m := packets.Mapping{}
	if err := readYAML(path, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Profile) Variant() packets.Variant {
	return p.variant
}

func (p *Profile) Defaults() packets.Mapping {
	return p.defaults.Clone()
}

// SampleRates lists the rates the table knows, ascending.
func (p *Profile) SampleRates() []int {
	out := make([]int, 0, len(p.rates))
	for k := range p.rates {
		if n, err := strconv.Atoi(k); err == nil {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// SampleRate returns the partial configuration for an output rate.
func (p *Profile) SampleRate(rate int) (packets.Mapping, error) {
	m, ok := p.rates[strconv.Itoa(rate)]
	if !ok {
		return nil, &UnknownSampleRateError{Rate: rate}
	}
	return m.Clone(), nil
}

func (p *Profile) Schedule() []packets.Period {
	return append([]packets.Period(nil), p.schedule...)
}

// Overrides are the caller's changes to the defaults. A non-zero SampleRate
// pulls in that rate's table entry before Fields are applied.
type Overrides struct {
	SampleRate int
	Fields     packets.Mapping
}

// Resolve merges defaults, the sample rate entry and explicit fields, in
// that order of increasing precedence.
func (p *Profile) Resolve(o Overrides) (packets.Mapping, error) {
	m := p.Defaults()
	if o.SampleRate != 0 {
		rate, err := p.SampleRate(o.SampleRate)
		if err != nil {
			return nil, err
		}
		m = m.Merge(rate)
	}
	return m.Merge(o.Fields), nil
}
