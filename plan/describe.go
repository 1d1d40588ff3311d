package plan

import (
	"fmt"
	"strings"
)

// Summary holds the statistics of a plan used for pre-flight documentation.
type Summary struct {
	// TotalSamples over all steps, each contributing
	// floor(duration_ms / 1000 * sample_rate).
	TotalSamples int64
	// MinDurationMS is the sum of the per-step capture durations. Actual
	// sweeps take longer: retuning and dropped samples are not included.
	MinDurationMS float64
	// FilesizeMB is the archive size of the raw samples in MB, at 8 bytes
	// per complex sample, excluding metadata.
	FilesizeMB float64
	// FreqLowEdge and FreqHighEdge are the outermost band edges covered by
	// the sweep in Hz: first/last step center offset by half its sample rate.
	FreqLowEdge  float64
	FreqHighEdge float64
}

// Summarize computes the plan statistics. Pure; does not require a device.
func Summarize(p Plan) Summary {
	var s Summary
	for _, step := range p {
		s.TotalSamples += int64(step.SampleCount())
		s.MinDurationMS += step.DurationMS
	}
	s.FilesizeMB = float64(s.TotalSamples) * 8 / 1e6
	if len(p) > 0 {
		s.FreqLowEdge = p[0].FreqLow()
		s.FreqHighEdge = p[len(p)-1].FreqHigh()
	}
	return s
}

// Describe renders the human-readable sweep documentation from a plan and
// its summary. The output is for presentation and confirmation only; the
// sequencer never consumes it.
func Describe(name string, p Plan, s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: capture time-domain IQ samples at %d frequencies.\n\n", name, len(p))
	fmt.Fprintf(&b, "Acquisition plan:\n")
	for i, step := range p {
		fmt.Fprintf(&b, "%d. Tune to %.2f MHz, set gain to %g dB, and acquire at %.2f Msps for %g ms\n",
			i+1, step.CenterFrequency/1e6, step.Gain, step.SampleRate/1e6, step.DurationMS)
	}
	fmt.Fprintf(&b, "\nCovered band: %.2f MHz to %.2f MHz\n", s.FreqLowEdge/1e6, s.FreqHighEdge/1e6)
	fmt.Fprintf(&b, "Minimum duration: %.2f ms, not including retuning and storage\n", s.MinDurationMS)
	fmt.Fprintf(&b, "Archive size: %d samples x 8 bytes = %.2f MB plus metadata\n", s.TotalSamples, s.FilesizeMB)
	return b.String()
}
