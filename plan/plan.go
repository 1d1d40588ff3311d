// Package plan turns the per-step parameter lists of a stepped-frequency
// sweep into a validated, frequency-ordered execution plan.
package plan

import (
	"fmt"
	"sort"

	"github.com/hb9tf/sweepiq/sdr"
)

// Plan is the ordered list of steps a sweep executes, ascending by center
// frequency.
type Plan []sdr.StepParams

// ConfigError reports a parameter list whose length diverges from the
// reference list (the center frequencies).
type ConfigError struct {
	Field string
	Want  int
	Got   int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("wrong number of %ss: expected %d, got %d", e.Field, e.Want, e.Got)
}

// Build zips the four per-step parameter lists into a plan sorted ascending
// by center frequency. Ties keep their input order. All lists must have the
// same length; the first diverging list is reported by field name. Build has
// no side effects and never touches hardware.
func Build(fcs, gains, sampleRates, durationsMS []float64) (Plan, error) {
	want := len(fcs)
	for _, l := range []struct {
		field string
		got   int
	}{
		{"center_frequency", len(fcs)},
		{"gain", len(gains)},
		{"sample_rate", len(sampleRates)},
		{"duration_ms", len(durationsMS)},
	} {
		if l.got != want {
			return nil, &ConfigError{Field: l.field, Want: want, Got: l.got}
		}
	}
	if want < 1 {
		return nil, &ConfigError{Field: "center_frequency", Want: 1, Got: 0}
	}

	p := make(Plan, want)
	for i := range p {
		p[i] = sdr.StepParams{
			CenterFrequency: fcs[i],
			Gain:            gains[i],
			SampleRate:      sampleRates[i],
			DurationMS:      durationsMS[i],
		}
	}
	sort.SliceStable(p, func(i, j int) bool {
		return p[i].CenterFrequency < p[j].CenterFrequency
	})
	return p, nil
}
