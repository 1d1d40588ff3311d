// Package hackrf captures IQ samples with a HackRF One by shelling out to
// the vendor's hackrf_transfer tool.
package hackrf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/golang/glog"

	"github.com/hb9tf/sweepiq/sdr"
)

const (
	SourceName    = "hackrf"
	transferAlias = "hackrf_transfer"
)

type SDR struct {
	Identifier string
}

func (s SDR) Name() string {
	return SourceName
}

func (s *SDR) Ready() error {
	if _, err := exec.LookPath(transferAlias); err != nil {
		return fmt.Errorf("%s not found in PATH: %s", transferAlias, err)
	}
	return nil
}

// Acquire tunes the HackRF and captures the requested number of samples into
// a temporary file, then converts the signed 8-bit IQ stream to complex64.
// The tool handles retuning and settle time; the call blocks until it exits.
func (s *SDR) Acquire(ctx context.Context, p sdr.StepParams) (*sdr.Capture, error) {
	tmp, err := os.CreateTemp("", "sweepiq-hackrf-*.iq")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	n := p.SampleCount()
	args := []string{
		"-r", tmpPath,
		"-f", fmt.Sprintf("%d", int64(p.CenterFrequency)),
		"-s", fmt.Sprintf("%d", int64(p.SampleRate)),
		"-n", fmt.Sprintf("%d", n),
		"-l", fmt.Sprintf("%d", int(p.Gain)),
	}
	cmd := exec.CommandContext(ctx, transferAlias, args...)
	glog.V(1).Infof("Running HackRF capture: %q\n", cmd)

	captureTime := time.Now().UTC()
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s failed: %s (output: %s)", transferAlias, err, out)
	}

	raw, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read capture file %q: %s", filepath.Base(tmpPath), err)
	}
	data := parseIQ(raw, n)
	if len(data) < n {
		glog.Warningf("capture returned %d samples, requested %d\n", len(data), n)
	}

	return &sdr.Capture{
		Data:        data,
		CaptureTime: captureTime,
	}, nil
}

// parseIQ converts interleaved signed 8-bit IQ pairs to complex64 in the
// [-1, 1) range, truncated to at most n samples.
func parseIQ(raw []byte, n int) []complex64 {
	count := len(raw) / 2
	if count > n {
		count = n
	}
	data := make([]complex64, count)
	for i := 0; i < count; i++ {
		re := float32(int8(raw[i*2])) / 128.0
		im := float32(int8(raw[i*2+1])) / 128.0
		data[i] = complex(re, im)
	}
	return data
}
