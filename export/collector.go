package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/golang/glog"

	"github.com/hb9tf/sweepiq/sweep"
)

const (
	contentType         = "application/json"
	collectEndpoint     = "sweepiq/v1/collect"
	defaultMaxIQSamples = 4 << 20 // per request, before IQ data is stripped
)

// Collector pushes recordings to a collect server. The wire format is a
// JSON array of recordings so the server can also accept batches.
type Collector struct {
	Server string
	Client *http.Client

	// MaxIQSamples caps the IQ payload per request; larger recordings are
	// sent with metadata and statistics only. 0 means the default cap.
	MaxIQSamples int
}

func (c *Collector) Name() string {
	return "collector"
}

func (c *Collector) Notify(ctx context.Context, r *sweep.Recording) error {
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	maxIQ := c.MaxIQSamples
	if maxIQ == 0 {
		maxIQ = defaultMaxIQSamples
	}

	send := *r
	if len(send.Data) > maxIQ {
		glog.Warningf("recording %d carries %d samples, above the %d cap; stripping IQ data from the push\n", r.RecordingID, len(r.Data), maxIQ)
		send.Data = nil
	}

	body, err := json.Marshal([]sweep.Recording{send})
	if err != nil {
		return fmt.Errorf("error marshalling recording to JSON: %s", err)
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(c.Server, "/"), collectEndpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error POSTing recording: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("collect server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return nil
}
