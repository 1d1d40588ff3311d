// Package sigmf builds SigMF-style metadata for stepped-frequency IQ
// recordings: one global record per sweep plus measurement, capture and
// annotation records per recording. Serialization of the container to
// storage is not handled here.
package sigmf

import (
	"fmt"

	"github.com/hb9tf/sweepiq/sdr"
)

const (
	// Datatype of the raw samples: interleaved little-endian complex float32.
	Datatype = "cf32_le"
	// Version of the metadata convention emitted by this builder.
	Version = "0.0.2"

	// Annotation kinds carried per recording.
	AnnotationSensor      = "SensorAnnotation"
	AnnotationCalibration = "CalibrationAnnotation"
)

// ScheduleEntry identifies the schedule that spawned a task, as handed down
// by the external scheduler.
type ScheduleEntry struct {
	Name     string `json:"name"`
	Start    string `json:"start,omitempty"`
	Stop     string `json:"stop,omitempty"`
	Interval int64  `json:"interval,omitempty"`
	Priority int64  `json:"priority,omitempty"`
}

// Sensor describes the measurement system. Its shape is owned by the host;
// it is carried through into the global record verbatim.
type Sensor map[string]any

// Global is the sweep-wide record, set exactly once per sweep.
type Global struct {
	Datatype      string        `json:"core:datatype"`
	Version       string        `json:"core:version"`
	Recorder      string        `json:"core:recorder,omitempty"`
	TaskID        int64         `json:"ntia-scos:task"`
	ScheduleEntry ScheduleEntry `json:"ntia-scos:schedule"`
	Sensor        Sensor        `json:"ntia-sensor:sensor,omitempty"`
}

// Measurement describes the acquisition of one recording.
type Measurement struct {
	RecordingID int    `json:"ntia-scos:recording"`
	TimeStart   string `json:"ntia-core:measurement_time_start"`
	TimeStop    string `json:"ntia-core:measurement_time_stop"`
	SampleCount int    `json:"ntia-core:number_of_samples"`
}

// Capture describes the radio configuration actually used for one recording.
type Capture struct {
	RecordingID int     `json:"ntia-scos:recording"`
	Frequency   float64 `json:"core:frequency"`
	Gain        float64 `json:"ntia-sensor:gain"`
	SampleRate  float64 `json:"core:sample_rate"`
	Datetime    string  `json:"core:datetime"`
	SampleStart int64   `json:"core:sample_start"`
}

// Annotation carries sensor or calibration state for a span of samples.
type Annotation struct {
	Kind        string  `json:"ntia-core:annotation_type"`
	RecordingID int     `json:"ntia-scos:recording"`
	SampleStart int64   `json:"core:sample_start"`
	SampleCount int     `json:"core:sample_count"`
	Gain        float64 `json:"ntia-sensor:gain,omitempty"`
	Temperature float64 `json:"ntia-sensor:temperature,omitempty"`
}

// Metadata is the assembled container contribution for a sweep. Records are
// appended per recording and never mutated afterwards.
type Metadata struct {
	Global       Global        `json:"global"`
	Measurements []Measurement `json:"measurements"`
	Captures     []Capture     `json:"captures"`
	Annotations  []Annotation  `json:"annotations"`
}

// ConsistencyError reports an annotation whose declared sample count does
// not match the samples actually captured for its recording. This is an
// internal invariant violation, not a recoverable condition.
type ConsistencyError struct {
	Kind        string
	RecordingID int
	Want        int
	Got         int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s for recording %d declares %d samples, capture has %d",
		e.Kind, e.RecordingID, e.Got, e.Want)
}

// StepInfo is everything the builder needs to describe one completed step.
type StepInfo struct {
	TaskID      int64
	RecordingID int
	Entry       ScheduleEntry
	Sensor      Sensor
	Recorder    string
	Params      sdr.StepParams
	SampleCount int
	StartTime   string
	EndTime     string
	CaptureTime string
}

// Builder accumulates metadata one recording at a time.
type Builder struct {
	md        Metadata
	globalSet bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

// AddStep appends the measurement, capture and annotation records for one
// completed step and returns that step's contribution: the global record
// plus the records just added. The global record is built on the first step
// and repeated verbatim in every contribution, so consumers can merge it
// idempotently. Output is deterministic: timestamps are taken verbatim from
// the step info.
func (b *Builder) AddStep(info StepInfo) *Metadata {
	if !b.globalSet {
		b.md.Global = Global{
			Datatype:      Datatype,
			Version:       Version,
			Recorder:      info.Recorder,
			TaskID:        info.TaskID,
			ScheduleEntry: info.Entry,
			Sensor:        info.Sensor,
		}
		b.globalSet = true
	}
	m := Measurement{
		RecordingID: info.RecordingID,
		TimeStart:   info.StartTime,
		TimeStop:    info.EndTime,
		SampleCount: info.SampleCount,
	}
	c := Capture{
		RecordingID: info.RecordingID,
		Frequency:   info.Params.CenterFrequency,
		Gain:        info.Params.Gain,
		SampleRate:  info.Params.SampleRate,
		Datetime:    info.CaptureTime,
		SampleStart: 0,
	}
	sensor := Annotation{
		Kind:        AnnotationSensor,
		RecordingID: info.RecordingID,
		SampleStart: 0,
		SampleCount: info.SampleCount,
		Gain:        info.Params.Gain,
	}
	cal := Annotation{
		Kind:        AnnotationCalibration,
		RecordingID: info.RecordingID,
		SampleStart: 0,
		SampleCount: info.SampleCount,
	}
	b.md.Measurements = append(b.md.Measurements, m)
	b.md.Captures = append(b.md.Captures, c)
	b.md.Annotations = append(b.md.Annotations, sensor, cal)

	return &Metadata{
		Global:       b.md.Global,
		Measurements: []Measurement{m},
		Captures:     []Capture{c},
		Annotations:  []Annotation{sensor, cal},
	}
}

// Validate checks that every sensor and calibration annotation declares the
// same sample count as the measurement of its recording.
func (b *Builder) Validate() error {
	counts := map[int]int{}
	for _, m := range b.md.Measurements {
		counts[m.RecordingID] = m.SampleCount
	}
	for _, a := range b.md.Annotations {
		if a.Kind != AnnotationSensor && a.Kind != AnnotationCalibration {
			continue
		}
		if want := counts[a.RecordingID]; a.SampleCount != want {
			return &ConsistencyError{
				Kind:        a.Kind,
				RecordingID: a.RecordingID,
				Want:        want,
				Got:         a.SampleCount,
			}
		}
	}
	return nil
}

// Metadata returns the records assembled so far.
func (b *Builder) Metadata() *Metadata {
	return &b.md
}
