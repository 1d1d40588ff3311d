package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hb9tf/sweepiq/sdr"
	"github.com/hb9tf/sweepiq/sigmf"
	"github.com/hb9tf/sweepiq/sweep"
)

func testRecording(t *testing.T, recordingID int) *sweep.Recording {
	t.Helper()
	params := sdr.StepParams{CenterFrequency: 2400e6, Gain: 10, SampleRate: 1e6, DurationMS: 1}
	data := []complex64{complex(1, 0), complex(0, 1)}

	b := sigmf.NewBuilder()
	md := b.AddStep(sigmf.StepInfo{
		TaskID:      5,
		RecordingID: recordingID,
		Recorder:    "fake",
		Params:      params,
		SampleCount: len(data),
		StartTime:   "2026-08-25T10:00:00Z",
		EndTime:     "2026-08-25T10:00:01Z",
		CaptureTime: "2026-08-25T10:00:00Z",
	})
	return &sweep.Recording{
		TaskID:      5,
		RecordingID: recordingID,
		Params:      params,
		Data:        data,
		StartTime:   time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 8, 25, 10, 0, 1, 0, time.UTC),
		CaptureTime: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		Metadata:    md,
	}
}

func TestCSVNotify(t *testing.T) {
	var buf bytes.Buffer
	c := &CSV{Out: &buf}

	require.NoError(t, c.Notify(context.Background(), testRecording(t, 1)))
	require.NoError(t, c.Notify(context.Background(), testRecording(t, 2)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 recordings
	assert.True(t, strings.HasPrefix(lines[0], "TaskID,RecordingID,Recorder"))
	assert.True(t, strings.HasPrefix(lines[1], "5,1,fake"))
	assert.True(t, strings.HasPrefix(lines[2], "5,2,fake"))
}

func TestSQLiteNotify(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	// In-memory sqlite is per-connection; keep the pool at one so every
	// statement sees the same DB.
	db.SetMaxOpenConns(1)

	s := &SQLite{DB: db}
	require.NoError(t, s.Notify(context.Background(), testRecording(t, 1)))
	require.NoError(t, s.Notify(context.Background(), testRecording(t, 2)))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM recordings;").Scan(&count))
	assert.Equal(t, 2, count)

	var recordingID, sampleCount int
	var recorder, metadata string
	require.NoError(t, db.QueryRow(
		"SELECT RecordingID, SampleCount, Recorder, Metadata FROM recordings ORDER BY RecordingID LIMIT 1;",
	).Scan(&recordingID, &sampleCount, &recorder, &metadata))
	assert.Equal(t, 1, recordingID)
	assert.Equal(t, 2, sampleCount)
	assert.Equal(t, "fake", recorder)

	var md sigmf.Metadata
	require.NoError(t, json.Unmarshal([]byte(metadata), &md))
	assert.Equal(t, int64(5), md.Global.TaskID)
}

func TestCollectorNotify(t *testing.T) {
	var got []sweep.Recording
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+collectEndpoint, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Collector{Server: srv.URL, Client: srv.Client()}
	require.NoError(t, c.Notify(context.Background(), testRecording(t, 1)))

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].RecordingID)
	assert.Equal(t, []complex64{complex(1, 0), complex(0, 1)}, got[0].Data)
}

func TestCollectorNotifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out of disk", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &Collector{Server: srv.URL, Client: srv.Client()}
	err := c.Notify(context.Background(), testRecording(t, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
