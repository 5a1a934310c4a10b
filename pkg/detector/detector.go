// Package detector reproduces the SimpleConfigurableDetector firmware filter
// on the host, so a configuration can be tried against recorded audio before
// it is written to a device.
package detector

import (
	"errors"
	"math"

	"github.com/kevmo314/go-audiomoth/pkg/packets"
)

// BlockSize is the number of raw samples in one DMA transfer. The firmware
// evaluates the threshold once per transfer.
const BlockSize = 1024

const dcBlockingFactor float32 = 0.995

var ErrInvalidConfiguration = errors.New("invalid detector configuration")

// Result is the state after one block.
type Result struct {
	Power    float32
	Detected bool
}

// Detector carries the DC filter and power history across blocks. It is not
// safe for concurrent use.
type Detector struct {
	divider   int
	shift     uint
	coeff     float32
	threshold float32
	factor    float32

	prevSample int32
	prevOutput int32
	prevPower  float32
}

// New builds a detector for blocks sampled at c.SampleRate, which are
// decimated by c.SampleRateDivider before filtering.
func New(c packets.Configuration) (*Detector, error) {
	if c.SampleRateDivider == 0 || c.SampleRate == 0 {
		return nil, ErrInvalidConfiguration
	}
	d := &Detector{
		divider:   int(c.SampleRateDivider),
		coeff:     coefficient(float32(c.GoertzelFreq), float32(c.SampleRate)/float32(c.SampleRateDivider)),
		threshold: c.GoertzelThresh,
		factor:    c.GoertzelFactor,
	}
	// decimation sums up to 16 oversampled values before it has to scale
	for over := uint16(c.OversampleRate) * uint16(c.SampleRateDivider); over > 16; over >>= 1 {
		d.shift++
	}
	return d, nil
}

// newDecimated builds a detector for blocks already at the effective rate.
func newDecimated(c packets.Configuration) (*Detector, error) {
	d, err := New(c)
	if err != nil {
		return nil, err
	}
	d.divider = 1
	d.shift = 0
	return d, nil
}

func coefficient(target, rate float32) float32 {
	return float32(math.Cos(2 * math.Pi * float64(target/rate)))
}

// Reset clears the filter history.
func (d *Detector) Reset() {
	d.prevSample, d.prevOutput, d.prevPower = 0, 0, 0
}

// Process runs one block through the filter. A trailing group shorter than
// the decimation factor is ignored.
func (d *Detector) Process(block []int16) Result {
	var s0, s1 float32
	for i := 0; i+d.divider <= len(block); i += d.divider {
		var sample int32
		for _, v := range block[i : i+d.divider] {
			sample += int32(v)
		}
		sample >>= d.shift

		output := sample - d.prevSample + int32(dcBlockingFactor*float32(d.prevOutput))
		d.prevOutput = output
		d.prevSample = sample

		s2 := float32(int16(output))/math.MaxInt16 + d.coeff*s1 - s0
		s0 = s1
		s1 = s2
	}

	power := s1*s1 + s0*s0 - d.coeff*s1*s0
	power = d.factor*power + (1-d.factor)*d.prevPower
	d.prevPower = power
	return Result{Power: power, Detected: power >= d.threshold}
}
