package detector

import (
	"errors"
	"fmt"
	"io"
	"math/cmplx"
	"time"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/wav"
	"github.com/mjibson/go-dsp/window"

	"github.com/kevmo314/go-audiomoth/pkg/packets"
)

var ErrUnsupportedFormat = errors.New("recording must be mono 16-bit PCM")

type SampleRateMismatchError struct {
	Got       uint32
	Raw       uint32
	Effective float64
}

func (e *SampleRateMismatchError) Error() string {
	return fmt.Sprintf("recording sample rate %d matches neither %d nor %g", e.Got, e.Raw, e.Effective)
}

type Block struct {
	Offset time.Duration
	Result
	// Peak is the strongest frequency in the block, in Hz.
	Peak float64
}

type Report struct {
	SampleRate uint32
	// Decimated is set when the recording is at the effective rate rather
	// than the raw acquisition rate.
	Decimated bool
	Blocks    []Block
}

// Detections counts the blocks that tripped the threshold.
func (r *Report) Detections() int {
	n := 0
	for _, b := range r.Blocks {
		if b.Detected {
			n++
		}
	}
	return n
}

// Scan runs the detector over a WAV recording taken at either c.SampleRate
// or the decimated rate c.SampleRate/c.SampleRateDivider.
func Scan(r io.Reader, c packets.Configuration) (*Report, error) {
	w, err := wav.New(r)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	if w.AudioFormat != 1 || w.NumChannels != 1 || w.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: format %d, %d channels, %d bits", ErrUnsupportedFormat, w.AudioFormat, w.NumChannels, w.BitsPerSample)
	}

	report := &Report{SampleRate: w.SampleRate}
	var d *Detector
	blockSize := BlockSize
	switch {
	case w.SampleRate == c.SampleRate:
		d, err = New(c)
	case c.SampleRateDivider != 0 && float64(w.SampleRate) == c.EffectiveSampleRate():
		d, err = newDecimated(c)
		blockSize = BlockSize / int(c.SampleRateDivider)
		report.Decimated = true
	default:
		return nil, &SampleRateMismatchError{Got: w.SampleRate, Raw: c.SampleRate, Effective: c.EffectiveSampleRate()}
	}
	if err != nil {
		return nil, err
	}

	for read := 0; read < w.Samples; {
		n := min(blockSize, w.Samples-read)
		data, err := w.ReadSamples(n)
		if err != nil {
			return nil, fmt.Errorf("read samples at %d: %w", read, err)
		}
		samples := data.([]int16)
		report.Blocks = append(report.Blocks, Block{
			Offset: time.Duration(read) * time.Second / time.Duration(w.SampleRate),
			Result: d.Process(samples),
			Peak:   peakFrequency(samples, w.SampleRate),
		})
		read += n
	}
	return report, nil
}

func peakFrequency(samples []int16, rate uint32) float64 {
	if len(samples) < 2 {
		return 0
	}
	x := make([]float64, len(samples))
	for i, v := range samples {
		x[i] = float64(v)
	}
	window.Apply(x, window.Hamming)
	spectrum := fft.FFTReal(x)

	best, bestMag := 0, 0.0
	for k := 1; k <= len(spectrum)/2; k++ {
		if m := cmplx.Abs(spectrum[k]); m > bestMag {
			best, bestMag = k, m
		}
	}
	return float64(best) * float64(rate) / float64(len(samples))
}
