package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/hb9tf/sweepiq/sdr"
	"github.com/hb9tf/sweepiq/sweep"
)

// CSV writes one summary line per recording. Raw IQ data is not included,
// only the derived power statistics.
type CSV struct {
	Out io.Writer

	w *csv.Writer
}

func (c *CSV) Name() string {
	return "csv"
}

func (c *CSV) Notify(ctx context.Context, r *sweep.Recording) error {
	if c.w == nil {
		c.w = csv.NewWriter(c.Out)
		if err := c.w.Write([]string{
			"TaskID",
			"RecordingID",
			"Recorder",
			"FreqCenter",
			"FreqLow",
			"FreqHigh",
			"Gain",
			"SampleRate",
			"SampleCount",
			"dBLow",
			"dBHigh",
			"dBAvg",
			"StartUnixMilli",
			"EndUnixMilli",
			"CaptureUnixMilli",
		}); err != nil {
			return err
		}
	}

	p := sdr.Power(r.Data)
	if err := c.w.Write([]string{
		fmt.Sprintf("%d", r.TaskID),
		fmt.Sprintf("%d", r.RecordingID),
		r.Metadata.Global.Recorder,
		fmt.Sprintf("%f", r.Params.CenterFrequency),
		fmt.Sprintf("%f", r.Params.FreqLow()),
		fmt.Sprintf("%f", r.Params.FreqHigh()),
		fmt.Sprintf("%f", r.Params.Gain),
		fmt.Sprintf("%f", r.Params.SampleRate),
		fmt.Sprintf("%d", len(r.Data)),
		fmt.Sprintf("%f", p.DBLow),
		fmt.Sprintf("%f", p.DBHigh),
		fmt.Sprintf("%f", p.DBAvg),
		fmt.Sprintf("%d", r.StartTime.UnixMilli()),
		fmt.Sprintf("%d", r.EndTime.UnixMilli()),
		fmt.Sprintf("%d", r.CaptureTime.UnixMilli()),
	}); err != nil {
		return err
	}

	c.w.Flush()
	if err := c.w.Error(); err != nil {
		glog.Warningf("error flushing CSV: %s\n", err)
		return err
	}
	return nil
}
