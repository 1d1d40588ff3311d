// Package rtlsdr captures IQ samples with an RTL-SDR dongle by shelling out
// to the vendor's rtl_sdr tool.
package rtlsdr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/golang/glog"

	"github.com/hb9tf/sweepiq/sdr"
)

const (
	SourceName   = "rtlsdr"
	captureAlias = "rtl_sdr"
)

type SDR struct {
	Identifier string
}

func (s SDR) Name() string {
	return SourceName
}

func (s *SDR) Ready() error {
	if _, err := exec.LookPath(captureAlias); err != nil {
		return fmt.Errorf("%s not found in PATH: %s", captureAlias, err)
	}
	return nil
}

// Acquire tunes the dongle and captures the requested number of samples from
// the tool's stdout, converting the unsigned 8-bit IQ stream to complex64.
func (s *SDR) Acquire(ctx context.Context, p sdr.StepParams) (*sdr.Capture, error) {
	n := p.SampleCount()
	args := []string{
		"-f", fmt.Sprintf("%d", int64(p.CenterFrequency)),
		"-s", fmt.Sprintf("%d", int64(p.SampleRate)),
		"-g", fmt.Sprintf("%d", int(p.Gain)),
		"-n", fmt.Sprintf("%d", n),
		"-", // dumps samples to stdout
	}
	cmd := exec.CommandContext(ctx, captureAlias, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	glog.V(1).Infof("Running RTL-SDR capture: %q\n", cmd)

	captureTime := time.Now().UTC()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %s", captureAlias, err)
	}

	data := parseIQ(out.Bytes(), n)
	if len(data) < n {
		glog.Warningf("capture returned %d samples, requested %d\n", len(data), n)
	}

	return &sdr.Capture{
		Data:        data,
		CaptureTime: captureTime,
	}, nil
}

// parseIQ converts interleaved unsigned 8-bit IQ pairs (zero at 127.5) to
// complex64 in the [-1, 1] range, truncated to at most n samples.
func parseIQ(raw []byte, n int) []complex64 {
	count := len(raw) / 2
	if count > n {
		count = n
	}
	data := make([]complex64, count)
	for i := 0; i < count; i++ {
		re := (float32(raw[i*2]) - 127.5) / 127.5
		im := (float32(raw[i*2+1]) - 127.5) / 127.5
		data[i] = complex(re, im)
	}
	return data
}
