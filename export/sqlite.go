package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/golang/glog"

	"github.com/hb9tf/sweepiq/sdr"
	"github.com/hb9tf/sweepiq/sweep"
)

const (
	sqliteRecordingCountInfo = 100

	sqliteCreateTableTmpl = `CREATE TABLE IF NOT EXISTS recordings (
		"ID"           INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		"TaskID"       INTEGER NOT NULL,
		"RecordingID"  INTEGER NOT NULL,
		"Recorder"     TEXT NOT NULL,
		"FreqCenter"   REAL,
		"FreqLow"      REAL,
		"FreqHigh"     REAL,
		"Gain"         REAL,
		"SampleRate"   REAL,
		"SampleCount"  INTEGER,
		"DBLow"        REAL,
		"DBHigh"       REAL,
		"DBAvg"        REAL,
		"Start"        INTEGER,
		"End"          INTEGER,
		"Capture"      INTEGER,
		"Metadata"     TEXT
	);`
	sqliteInsertRecordingTmpl = `INSERT INTO recordings (
		TaskID,
		RecordingID,
		Recorder,
		FreqCenter,
		FreqLow,
		FreqHigh,
		Gain,
		SampleRate,
		SampleCount,
		DBLow,
		DBHigh,
		DBAvg,
		Start,
		End,
		Capture,
		Metadata
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
)

// SQLite stores one summary row per recording, including the serialized
// metadata contribution.
type SQLite struct {
	DB *sql.DB

	tableReady bool
	counts     map[string]int
}

func (s *SQLite) Name() string {
	return "sqlite"
}

func (s *SQLite) Notify(ctx context.Context, r *sweep.Recording) error {
	if !s.tableReady {
		if err := createTableIfNotExists(s.DB, sqliteCreateTableTmpl); err != nil {
			return fmt.Errorf("unable to create table: %s", err)
		}
		s.tableReady = true
		s.counts = map[string]int{
			"error":   0,
			"success": 0,
			"total":   0,
		}
	}

	s.counts["total"] += 1
	if err := insertRecording(ctx, s.DB, sqliteInsertRecordingTmpl, r); err != nil {
		s.counts["error"] += 1
		return fmt.Errorf("error storing in sqlite DB: %s", err)
	}
	s.counts["success"] += 1
	if s.counts["total"]%sqliteRecordingCountInfo == 0 {
		glog.Infof("Recording export counts: %+v\n", s.counts)
	}

	return nil
}

func createTableIfNotExists(db *sql.DB, tmpl string) error {
	statement, err := db.Prepare(tmpl)
	if err != nil {
		return err
	}
	if _, err := statement.Exec(); err != nil {
		return err
	}

	return nil
}

func insertRecording(ctx context.Context, db *sql.DB, tmpl string, r *sweep.Recording) error {
	md, err := json.Marshal(r.Metadata)
	if err != nil {
		return err
	}
	p := sdr.Power(r.Data)

	statement, err := db.Prepare(tmpl)
	if err != nil {
		return err
	}
	if _, err := statement.ExecContext(ctx,
		r.TaskID,
		r.RecordingID,
		r.Metadata.Global.Recorder,
		r.Params.CenterFrequency,
		r.Params.FreqLow(),
		r.Params.FreqHigh(),
		r.Params.Gain,
		r.Params.SampleRate,
		len(r.Data),
		p.DBLow,
		p.DBHigh,
		p.DBAvg,
		r.StartTime.UnixMilli(),
		r.EndTime.UnixMilli(),
		r.CaptureTime.UnixMilli(),
		string(md),
	); err != nil {
		return err
	}

	return nil
}
