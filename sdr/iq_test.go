package sdr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestPower(t *testing.T) {
	// Unit-magnitude samples have 0 dB power each.
	data := []complex64{complex(1, 0), complex(0, 1), complex(-1, 0)}
	p := Power(data)
	assert.InDelta(t, 0, p.DBLow, tolerance)
	assert.InDelta(t, 0, p.DBHigh, tolerance)
	assert.InDelta(t, 0, p.DBAvg, tolerance)
}

func TestPowerMixedLevels(t *testing.T) {
	// One sample at power 1, one at power 0.01 (-20 dB).
	data := []complex64{complex(1, 0), complex(0.1, 0)}
	p := Power(data)
	assert.InDelta(t, -20, p.DBLow, 1e-5)
	assert.InDelta(t, 0, p.DBHigh, 1e-5)
	// Average of linear powers: (1 + 0.01) / 2.
	assert.InDelta(t, 10*math.Log10(0.505), p.DBAvg, 1e-5)
}

func TestPowerEmpty(t *testing.T) {
	p := Power(nil)
	assert.True(t, math.IsInf(p.DBLow, -1))
	assert.True(t, math.IsInf(p.DBHigh, -1))
	assert.True(t, math.IsInf(p.DBAvg, -1))
}

func TestCF32RoundTrip(t *testing.T) {
	data := []complex64{complex(0.25, -0.75), complex(-1, 1), complex(0, 0)}
	buf := EncodeCF32(data)
	assert.Len(t, buf, len(data)*BytesPerSample)

	out, err := DecodeCF32(buf)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestDecodeCF32BadLength(t *testing.T) {
	_, err := DecodeCF32(make([]byte, 7))
	require.Error(t, err)
}

func TestStepParamsSampleCount(t *testing.T) {
	p := StepParams{CenterFrequency: 2400e6, SampleRate: 1_000_000, DurationMS: 100}
	assert.Equal(t, 100_000, p.SampleCount())
	assert.Equal(t, 2400e6-0.5e6, p.FreqLow())
	assert.Equal(t, 2400e6+0.5e6, p.FreqHigh())
}
