package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang/glog"

	"github.com/hb9tf/sweepiq/sweep"
)

const (
	mysqlRecordingCountInfo = 100

	mysqlCreateTableTmpl = "CREATE TABLE IF NOT EXISTS recordings (" +
		"`ID`          BIGINT NOT NULL PRIMARY KEY AUTO_INCREMENT," +
		"`TaskID`      BIGINT NOT NULL," +
		"`RecordingID` INT NOT NULL," +
		"`Recorder`    VARCHAR(64) NOT NULL," +
		"`FreqCenter`  DOUBLE," +
		"`FreqLow`     DOUBLE," +
		"`FreqHigh`    DOUBLE," +
		"`Gain`        DOUBLE," +
		"`SampleRate`  DOUBLE," +
		"`SampleCount` BIGINT," +
		"`DBLow`       DOUBLE," +
		"`DBHigh`      DOUBLE," +
		"`DBAvg`       DOUBLE," +
		"`Start`       BIGINT," +
		"`End`         BIGINT," +
		"`Capture`     BIGINT," +
		"`Metadata`    MEDIUMTEXT" +
		");"
	mysqlInsertRecordingTmpl = `INSERT INTO recordings (
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

// MySQL stores one summary row per recording, including the serialized
// metadata contribution.
type MySQL struct {
	DB *sql.DB

	tableReady bool
	counts     map[string]int
}

func (m *MySQL) Name() string {
	return "mysql"
}

func (m *MySQL) Notify(ctx context.Context, r *sweep.Recording) error {
	if !m.tableReady {
		if err := createTableIfNotExists(m.DB, mysqlCreateTableTmpl); err != nil {
			return fmt.Errorf("unable to create table: %s", err)
		}
		m.tableReady = true
		m.counts = map[string]int{
			"error":   0,
			"success": 0,
			"total":   0,
		}
	}

	m.counts["total"] += 1
	if err := insertRecording(ctx, m.DB, mysqlInsertRecordingTmpl, r); err != nil {
		m.counts["error"] += 1
		return fmt.Errorf("error storing in MySQL DB: %s", err)
	}
	m.counts["success"] += 1
	if m.counts["total"]%mysqlRecordingCountInfo == 0 {
		glog.Infof("Recording export counts: %+v\n", m.counts)
	}

	return nil
}
