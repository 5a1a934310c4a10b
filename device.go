// Package audiomoth talks to an AudioMoth recorder running one of the
// configurable detector firmwares.
package audiomoth

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/kevmo314/go-audiomoth/pkg/config"
	"github.com/kevmo314/go-audiomoth/pkg/packets"
	"github.com/kevmo314/go-audiomoth/pkg/transport"
)

type Device struct {
	t       transport.Transport
	profile *config.Profile
	variant packets.Variant

	now     func() time.Time
	setTime bool
	logger  *log.Logger
}

type Option func(*Device)

// WithClock replaces time.Now as the source of the triggered time field.
func WithClock(now func() time.Time) Option {
	return func(d *Device) { d.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(d *Device) { d.logger = l }
}

// SetTime makes Configure stamp the triggered layout's time field with the
// current clock, overriding any value from the profile or overrides.
func SetTime(on bool) Option {
	return func(d *Device) { d.setTime = on }
}

func New(t transport.Transport, p *config.Profile, v packets.Variant, opts ...Option) *Device {
	d := &Device{
		t:       t,
		profile: p,
		variant: v,
		now:     time.Now,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Device) Variant() packets.Variant {
	return d.variant
}

func (d *Device) Profile() *config.Profile {
	return d.profile
}

func (d *Device) exchange(ctx context.Context, cmd packets.Command, tokens []string) ([]string, error) {
	d.logger.Printf("[audiomoth] %s (%d bytes)", cmd, len(tokens))
	resp, err := d.t.Exchange(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd, err)
	}
	return resp, nil
}

// Info reads the device status record.
func (d *Device) Info(ctx context.Context) (*packets.DeviceInfo, error) {
	resp, err := d.exchange(ctx, packets.CommandGetStatus, packets.CommandGetStatus.Request())
	if err != nil {
		return nil, err
	}
	info, err := packets.DecodeDeviceInfo(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", packets.CommandGetStatus, err)
	}
	return info, nil
}

// Schedule reads the recording periods stored on the device.
func (d *Device) Schedule(ctx context.Context) ([]packets.Period, error) {
	resp, err := d.exchange(ctx, packets.CommandGetSchedule, packets.CommandGetSchedule.Request())
	if err != nil {
		return nil, err
	}
	periods, err := packets.DecodeSchedule(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", packets.CommandGetSchedule, err)
	}
	return periods, nil
}

// SetSchedule writes all five periods and returns what the device echoed.
func (d *Device) SetSchedule(ctx context.Context, periods []packets.Period) ([]packets.Period, error) {
	req, err := packets.EncodeSchedule(periods)
	if err != nil {
		return nil, err
	}
	resp, err := d.exchange(ctx, packets.CommandSetSchedule, req)
	if err != nil {
		return nil, err
	}
	applied, err := packets.DecodeSchedule(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", packets.CommandSetSchedule, err)
	}
	return applied, nil
}

// Resolve builds the complete configuration Configure would send.
func (d *Device) Resolve(o config.Overrides) (*packets.Configuration, error) {
	m, err := d.profile.Resolve(o)
	if err != nil {
		return nil, err
	}
	if d.setTime && d.variant == packets.Triggered {
		m["time"] = d.now().Unix()
	}
	return packets.ConfigurationFromMap(m, d.variant)
}

// Configure resolves o against the profile and sends the result.
func (d *Device) Configure(ctx context.Context, o config.Overrides) (*packets.Configuration, error) {
	c, err := d.Resolve(o)
	if err != nil {
		return nil, err
	}
	return d.Apply(ctx, *c)
}

// Apply sends c unchanged and returns the configuration the device echoed.
func (d *Device) Apply(ctx context.Context, c packets.Configuration) (*packets.Configuration, error) {
	req, err := packets.EncodeConfiguration(c, d.variant)
	if err != nil {
		return nil, err
	}
	resp, err := d.exchange(ctx, packets.CommandSetConfiguration, req)
	if err != nil {
		return nil, err
	}
	applied, err := packets.DecodeConfiguration(resp, d.variant)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", packets.CommandSetConfiguration, err)
	}
	return applied, nil
}
