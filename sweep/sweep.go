// Package sweep drives a radio through a stepped-frequency acquisition plan,
// one step at a time, and publishes each completed recording together with
// its metadata.
package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/hb9tf/sweepiq/plan"
	"github.com/hb9tf/sweepiq/sdr"
	"github.com/hb9tf/sweepiq/sigmf"
)

// PreconditionError reports a required component that is not ready. It is
// raised before any step executes; no notifications have been published.
type PreconditionError struct {
	Component string
	Err       error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("component %q not ready: %s", e.Component, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// AcquisitionError reports a failed device call for one step. It is fatal
// for the remainder of the sweep; recordings published before it stand.
type AcquisitionError struct {
	RecordingID int
	Params      sdr.StepParams
	Err         error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquisition of recording %d (%.2f MHz) failed: %s",
		e.RecordingID, e.Params.CenterFrequency/1e6, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Action executes one stepped-frequency plan against one radio. At most one
// sweep may run against a given radio at a time; serializing sweeps is the
// scheduler's responsibility.
type Action struct {
	Name     string
	Plan     plan.Plan
	Radio    sdr.Radio
	Notifier *Notifier
}

func New(name string, p plan.Plan, radio sdr.Radio) *Action {
	return &Action{
		Name:     name,
		Plan:     p,
		Radio:    radio,
		Notifier: &Notifier{},
	}
}

// Description renders the human-readable acquisition plan. It never runs
// the device.
func (a *Action) Description() string {
	return plan.Describe(a.Name, a.Plan, plan.Summarize(a.Plan))
}

// Run executes the plan in order. For each step it records the start time,
// blocks on the device acquisition, records the end time and publishes the
// recording with a 1-based recording id. Steps never overlap. A failing
// step or subscriber aborts the remainder of the sweep; recordings already
// published are not rolled back.
func (a *Action) Run(ctx context.Context, entry sigmf.ScheduleEntry, taskID int64, sensor sigmf.Sensor) error {
	if err := a.Radio.Ready(); err != nil {
		return &PreconditionError{Component: a.Radio.Name(), Err: err}
	}

	builder := sigmf.NewBuilder()
	for i, step := range a.Plan {
		recordingID := i + 1
		glog.V(1).Infof("task %d: recording %d/%d: tuning to %.2f MHz", taskID, recordingID, len(a.Plan), step.CenterFrequency/1e6)

		startTime := time.Now().UTC()
		capture, err := a.Radio.Acquire(ctx, step)
		if err != nil {
			return &AcquisitionError{RecordingID: recordingID, Params: step, Err: err}
		}
		endTime := time.Now().UTC()

		md := builder.AddStep(sigmf.StepInfo{
			TaskID:      taskID,
			RecordingID: recordingID,
			Entry:       entry,
			Sensor:      sensor,
			Recorder:    a.Radio.Name(),
			Params:      step,
			SampleCount: len(capture.Data),
			StartTime:   startTime.Format(time.RFC3339Nano),
			EndTime:     endTime.Format(time.RFC3339Nano),
			CaptureTime: capture.CaptureTime.UTC().Format(time.RFC3339Nano),
		})
		if err := builder.Validate(); err != nil {
			return err
		}

		if err := a.Notifier.Publish(ctx, &Recording{
			TaskID:      taskID,
			RecordingID: recordingID,
			Params:      step,
			Data:        capture.Data,
			StartTime:   startTime,
			EndTime:     endTime,
			CaptureTime: capture.CaptureTime.UTC(),
			Metadata:    md,
		}); err != nil {
			return err
		}
		glog.V(1).Infof("task %d: recording %d published (%d samples)", taskID, recordingID, len(capture.Data))
	}

	return nil
}
