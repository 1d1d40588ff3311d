package sweep

import (
	"encoding/json"
	"time"

	"github.com/hb9tf/sweepiq/sdr"
	"github.com/hb9tf/sweepiq/sigmf"
)

// Recording is the numbered output of one step within a sweep: the raw IQ
// samples plus the metadata contribution describing them. Once published it
// is handed off; the sequencer keeps no reference and never mutates it.
type Recording struct {
	TaskID      int64
	RecordingID int

	Params      sdr.StepParams
	Data        []complex64
	StartTime   time.Time
	EndTime     time.Time
	CaptureTime time.Time

	Metadata *sigmf.Metadata
}

// recordingWire is the JSON shape of a recording. IQ samples travel as
// base64 of the cf32-le byte layout since JSON has no complex type.
type recordingWire struct {
	TaskID      int64           `json:"taskId"`
	RecordingID int             `json:"recordingId"`
	Params      sdr.StepParams  `json:"params"`
	Data        []byte          `json:"data"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`
	CaptureTime time.Time       `json:"captureTime"`
	Metadata    *sigmf.Metadata `json:"metadata"`
}

func (r Recording) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordingWire{
		TaskID:      r.TaskID,
		RecordingID: r.RecordingID,
		Params:      r.Params,
		Data:        sdr.EncodeCF32(r.Data),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		CaptureTime: r.CaptureTime,
		Metadata:    r.Metadata,
	})
}

func (r *Recording) UnmarshalJSON(b []byte) error {
	var w recordingWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	data, err := sdr.DecodeCF32(w.Data)
	if err != nil {
		return err
	}
	*r = Recording{
		TaskID:      w.TaskID,
		RecordingID: w.RecordingID,
		Params:      w.Params,
		Data:        data,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		CaptureTime: w.CaptureTime,
		Metadata:    w.Metadata,
	}
	return nil
}
