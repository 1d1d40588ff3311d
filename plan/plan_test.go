package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSortsByFrequency(t *testing.T) {
	p, err := Build(
		[]float64{2450e6, 2400e6, 2500e6},
		[]float64{20, 10, 30},
		[]float64{1e6, 2e6, 3e6},
		[]float64{10, 20, 30},
	)
	require.NoError(t, err)
	require.Len(t, p, 3)

	assert.Equal(t, 2400e6, p[0].CenterFrequency)
	assert.Equal(t, 2450e6, p[1].CenterFrequency)
	assert.Equal(t, 2500e6, p[2].CenterFrequency)

	// The other parameters travel with their frequency.
	assert.Equal(t, 10.0, p[0].Gain)
	assert.Equal(t, 2e6, p[0].SampleRate)
	assert.Equal(t, 20.0, p[0].DurationMS)

	for i := 1; i < len(p); i++ {
		assert.LessOrEqual(t, p[i-1].CenterFrequency, p[i].CenterFrequency)
	}
}

func TestBuildStableOnTies(t *testing.T) {
	p, err := Build(
		[]float64{100e6, 100e6},
		[]float64{1, 2},
		[]float64{1e6, 1e6},
		[]float64{10, 10},
	)
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, 1.0, p[0].Gain)
	assert.Equal(t, 2.0, p[1].Gain)
}

func TestBuildLengthMismatch(t *testing.T) {
	for _, tc := range []struct {
		desc      string
		fcs       []float64
		gains     []float64
		rates     []float64
		durations []float64
		field     string
	}{
		{
			desc:      "short gains",
			fcs:       []float64{1e6, 2e6, 3e6},
			gains:     []float64{10, 20},
			rates:     []float64{1e6, 1e6, 1e6},
			durations: []float64{10, 10, 10},
			field:     "gain",
		},
		{
			desc:      "short sample rates",
			fcs:       []float64{1e6, 2e6},
			gains:     []float64{10, 20},
			rates:     []float64{1e6},
			durations: []float64{10, 10},
			field:     "sample_rate",
		},
		{
			desc:      "long durations",
			fcs:       []float64{1e6, 2e6},
			gains:     []float64{10, 20},
			rates:     []float64{1e6, 1e6},
			durations: []float64{10, 10, 10},
			field:     "duration_ms",
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			p, err := Build(tc.fcs, tc.gains, tc.rates, tc.durations)
			require.Error(t, err)
			assert.Nil(t, p)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
			assert.Equal(t, len(tc.fcs), cfgErr.Want)
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build(nil, nil, nil, nil)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "center_frequency", cfgErr.Field)
}
