package sigmf

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hb9tf/sweepiq/sdr"
)

func stepInfo(recordingID, samples int) StepInfo {
	return StepInfo{
		TaskID:      42,
		RecordingID: recordingID,
		Entry:       ScheduleEntry{Name: "test"},
		Recorder:    "fake",
		Params: sdr.StepParams{
			CenterFrequency: 2400e6,
			Gain:            10,
			SampleRate:      1e6,
			DurationMS:      10,
		},
		SampleCount: samples,
		StartTime:   "2026-08-25T10:00:00Z",
		EndTime:     "2026-08-25T10:00:01Z",
		CaptureTime: "2026-08-25T10:00:00.5Z",
	}
}

func TestAddStepContribution(t *testing.T) {
	b := NewBuilder()
	md := b.AddStep(stepInfo(1, 1024))

	assert.Equal(t, Datatype, md.Global.Datatype)
	assert.Equal(t, int64(42), md.Global.TaskID)
	assert.Equal(t, "fake", md.Global.Recorder)

	require.Len(t, md.Measurements, 1)
	assert.Equal(t, 1, md.Measurements[0].RecordingID)
	assert.Equal(t, 1024, md.Measurements[0].SampleCount)
	assert.Equal(t, "2026-08-25T10:00:00Z", md.Measurements[0].TimeStart)

	require.Len(t, md.Captures, 1)
	assert.Equal(t, 2400e6, md.Captures[0].Frequency)
	assert.Equal(t, "2026-08-25T10:00:00.5Z", md.Captures[0].Datetime)

	require.Len(t, md.Annotations, 2)
	for _, a := range md.Annotations {
		assert.Equal(t, 1024, a.SampleCount)
	}
	assert.Equal(t, AnnotationSensor, md.Annotations[0].Kind)
	assert.Equal(t, AnnotationCalibration, md.Annotations[1].Kind)
}

func TestAggregateGrowsPerStep(t *testing.T) {
	b := NewBuilder()
	b.AddStep(stepInfo(1, 100))
	b.AddStep(stepInfo(2, 200))

	md := b.Metadata()
	assert.Len(t, md.Measurements, 2)
	assert.Len(t, md.Captures, 2)
	assert.Len(t, md.Annotations, 4)
	require.NoError(t, b.Validate())
}

func TestValidateCatchesSampleCountMismatch(t *testing.T) {
	b := NewBuilder()
	b.AddStep(stepInfo(1, 100))
	// Corrupt an annotation behind the builder's back.
	b.Metadata().Annotations[0].SampleCount = 99

	err := b.Validate()
	require.Error(t, err)
	var cerr *ConsistencyError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, AnnotationSensor, cerr.Kind)
	assert.Equal(t, 1, cerr.RecordingID)
	assert.Equal(t, 100, cerr.Want)
	assert.Equal(t, 99, cerr.Got)
}

func TestMetadataDeterministic(t *testing.T) {
	build := func() []byte {
		b := NewBuilder()
		b.AddStep(stepInfo(1, 100))
		b.AddStep(stepInfo(2, 200))
		out, err := json.Marshal(b.Metadata())
		require.NoError(t, err)
		return out
	}
	assert.Equal(t, build(), build())
}
