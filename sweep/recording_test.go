package sweep

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hb9tf/sweepiq/sdr"
	"github.com/hb9tf/sweepiq/sigmf"
)

func TestRecordingJSONRoundTrip(t *testing.T) {
	b := sigmf.NewBuilder()
	md := b.AddStep(sigmf.StepInfo{
		TaskID:      9,
		RecordingID: 1,
		Recorder:    "fake",
		Params:      sdr.StepParams{CenterFrequency: 100e6, Gain: 10, SampleRate: 1e6, DurationMS: 1},
		SampleCount: 3,
		StartTime:   "2026-08-25T10:00:00Z",
		EndTime:     "2026-08-25T10:00:01Z",
		CaptureTime: "2026-08-25T10:00:00Z",
	})
	in := Recording{
		TaskID:      9,
		RecordingID: 1,
		Params:      sdr.StepParams{CenterFrequency: 100e6, Gain: 10, SampleRate: 1e6, DurationMS: 1},
		Data:        []complex64{complex(0.5, -0.5), complex(1, 0), complex(0, -1)},
		StartTime:   time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 8, 25, 10, 0, 1, 0, time.UTC),
		CaptureTime: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		Metadata:    md,
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out Recording
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in.TaskID, out.TaskID)
	assert.Equal(t, in.RecordingID, out.RecordingID)
	assert.Equal(t, in.Params, out.Params)
	assert.Equal(t, in.Data, out.Data)
	assert.True(t, in.StartTime.Equal(out.StartTime))
	require.NotNil(t, out.Metadata)
	assert.Equal(t, md.Global, out.Metadata.Global)
	assert.Equal(t, md.Annotations, out.Metadata.Annotations)
}

func TestRecordingJSONRejectsBadIQLength(t *testing.T) {
	var r Recording
	err := json.Unmarshal([]byte(`{"recordingId":1,"data":"AAAA"}`), &r)
	require.Error(t, err)
}
