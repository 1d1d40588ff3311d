package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	p, err := Build(
		[]float64{100e6, 200e6, 300e6},
		[]float64{10, 20, 30},
		[]float64{1e6, 2e6, 4e6},
		[]float64{10, 20, 5},
	)
	require.NoError(t, err)

	s := Summarize(p)
	assert.Equal(t, 35.0, s.MinDurationMS)
	// 10ms@1Msps + 20ms@2Msps + 5ms@4Msps
	assert.Equal(t, int64(10_000+40_000+20_000), s.TotalSamples)
	assert.InDelta(t, 70_000*8/1e6, s.FilesizeMB, 1e-9)
	assert.Equal(t, 100e6-0.5e6, s.FreqLowEdge)
	assert.Equal(t, 300e6+2e6, s.FreqHighEdge)
}

func TestSummarizeSingleStep(t *testing.T) {
	p, err := Build([]float64{2400e6}, []float64{10}, []float64{1_000_000}, []float64{100})
	require.NoError(t, err)

	s := Summarize(p)
	assert.Equal(t, int64(100_000), s.TotalSamples)
	assert.Equal(t, 100.0, s.MinDurationMS)
	assert.InDelta(t, 0.8, s.FilesizeMB, 1e-9)
}

func TestDescribe(t *testing.T) {
	p, err := Build(
		[]float64{2450e6, 2400e6},
		[]float64{20, 10},
		[]float64{1e6, 1e6},
		[]float64{10, 10},
	)
	require.NoError(t, err)

	out := Describe("test-sweep", p, Summarize(p))

	// Steps appear in frequency order, numbered from 1.
	first := strings.Index(out, "1. Tune to 2400.00 MHz, set gain to 10 dB, and acquire at 1.00 Msps for 10 ms")
	second := strings.Index(out, "2. Tune to 2450.00 MHz, set gain to 20 dB, and acquire at 1.00 Msps for 10 ms")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)

	assert.Contains(t, out, "capture time-domain IQ samples at 2 frequencies")
	assert.Contains(t, out, "Minimum duration: 20.00 ms")
	assert.Contains(t, out, "20000 samples x 8 bytes = 0.16 MB")
}
