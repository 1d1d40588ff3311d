package sdr

import (
	"context"
	"time"
)

// StepParams describes a single tuning step of a stepped-frequency sweep:
// where to tune, how to configure the frontend and how long to capture.
type StepParams struct {
	// CenterFrequency is the tuning frequency in Hz.
	CenterFrequency float64
	// Gain is the requested frontend gain in dB.
	Gain float64
	// SampleRate is the requested sample rate in Hz.
	SampleRate float64
	// DurationMS is the capture duration in milliseconds.
	DurationMS float64
}

// SampleCount is the number of IQ samples a step captures.
func (p StepParams) SampleCount() int {
	return int(p.DurationMS / 1000 * p.SampleRate)
}

// FreqLow is the lower edge of the band covered by the step in Hz.
func (p StepParams) FreqLow() float64 {
	return p.CenterFrequency - p.SampleRate/2
}

// FreqHigh is the upper edge of the band covered by the step in Hz.
func (p StepParams) FreqHigh() float64 {
	return p.CenterFrequency + p.SampleRate/2
}

// Capture is the raw result of one step: complex baseband samples plus the
// device-reported time the capture started.
type Capture struct {
	Data        []complex64
	CaptureTime time.Time
}

type Radio interface {
	Name() string
	// Ready reports whether the device can be used for a sweep.
	Ready() error
	// Acquire tunes the device according to the step parameters and blocks
	// until the capture completes. Retune latency and dropped-sample
	// discarding are the device's concern.
	Acquire(ctx context.Context, p StepParams) (*Capture, error)
}
