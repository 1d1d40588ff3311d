package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/hb9tf/sweepiq/export"
	"github.com/hb9tf/sweepiq/hackrf"
	"github.com/hb9tf/sweepiq/plan"
	"github.com/hb9tf/sweepiq/rtlsdr"
	"github.com/hb9tf/sweepiq/sdr"
	"github.com/hb9tf/sweepiq/sigmf"
	"github.com/hb9tf/sweepiq/sweep"

	// Blind import support for sqlite3 used by the sqlite exporter.
	_ "github.com/mattn/go-sqlite3"
)

// Flags
var (
	name         = flag.String("name", "", "name of the sweep (defaults to a random UUID)")
	taskID       = flag.Int64("taskID", 0, "task identifier handed to subscribers (defaults to the current unix time)")
	fcsRaw       = flag.String("fcs", "", "comma separated center frequencies in Hz, one per step")
	gainsRaw     = flag.String("gains", "", "comma separated gains in dB, one per step")
	ratesRaw     = flag.String("sampleRates", "", "comma separated sample rates in Hz, one per step")
	durationsRaw = flag.String("durationsMs", "", "comma separated capture durations in ms, one per step")
	sdrType      = flag.String("sdr", "", "SDR to use (one of: hackrf, rtlsdr)")
	output       = flag.String("output", "csv", "comma separated export mechanisms to use (any of: csv, sqlite, collector)")
	describeOnly = flag.Bool("describe", false, "print the acquisition plan and exit without touching the device")
	sensorFile   = flag.String("sensorFile", "", "path to a JSON file describing the sensor, carried into the metadata")

	// SQLite
	sqliteFile = flag.String("sqliteFile", "/tmp/sweepiq", "File path of the sqlite DB file to use.")

	// Collect server
	collectServer = flag.String("collectServer", "https://localhost:8443", "URL scheme, address and port of the collect server.")
)

func parseFloats(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []float64
	for _, part := range strings.Split(raw, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func main() {
	ctx := context.Background()
	// Set defaults for glog flags. Can be overridden via cmdline.
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "WARNING")
	flag.Set("v", "1")
	// Parse flags globally.
	flag.Parse()

	if *name == "" {
		*name = uuid.NewString()
	}
	if *taskID == 0 {
		*taskID = time.Now().Unix()
	}

	// Plan setup. This happens before any hardware interaction so that
	// parameter mistakes never leave a half-run sweep behind.
	fcs, err := parseFloats(*fcsRaw)
	if err != nil {
		glog.Exitf("unable to parse -fcs: %s", err)
	}
	gains, err := parseFloats(*gainsRaw)
	if err != nil {
		glog.Exitf("unable to parse -gains: %s", err)
	}
	rates, err := parseFloats(*ratesRaw)
	if err != nil {
		glog.Exitf("unable to parse -sampleRates: %s", err)
	}
	durations, err := parseFloats(*durationsRaw)
	if err != nil {
		glog.Exitf("unable to parse -durationsMs: %s", err)
	}
	p, err := plan.Build(fcs, gains, rates, durations)
	if err != nil {
		glog.Exitf("invalid sweep parameters: %s", err)
	}

	// SDR setup
	var radio sdr.Radio
	switch strings.ToLower(*sdrType) {
	case hackrf.SourceName:
		radio = &hackrf.SDR{
			Identifier: *name,
		}
	case rtlsdr.SourceName:
		radio = &rtlsdr.SDR{
			Identifier: *name,
		}
	default:
		if !*describeOnly {
			glog.Exitf("%q is not a supported SDR type, pick one of: hackrf, rtlsdr", *sdrType)
		}
	}

	action := sweep.New(*name, p, radio)
	if *describeOnly {
		fmt.Print(action.Description())
		return
	}
	glog.Infof("sweep plan:\n%s", action.Description())

	// Exporter setup
	for _, out := range strings.Split(*output, ",") {
		switch strings.ToLower(strings.TrimSpace(out)) {
		case "csv":
			action.Notifier.Subscribe(&export.CSV{Out: os.Stdout})
		case "sqlite":
			db, err := sql.Open("sqlite3", *sqliteFile)
			if err != nil {
				glog.Exitf("unable to open sqlite DB %q: %s", *sqliteFile, err)
			}
			action.Notifier.Subscribe(&export.SQLite{
				DB: db,
			})
		case "collector":
			action.Notifier.Subscribe(&export.Collector{
				Server: *collectServer,
			})
		default:
			glog.Exitf("%q is not a supported export method, pick one of: csv, sqlite, collector", out)
		}
	}

	// Sensor definition (optional).
	sensor := sigmf.Sensor{}
	if *sensorFile != "" {
		raw, err := os.ReadFile(*sensorFile)
		if err != nil {
			glog.Exitf("unable to read sensor file %q: %s", *sensorFile, err)
		}
		if err := json.Unmarshal(raw, &sensor); err != nil {
			glog.Exitf("unable to parse sensor file %q: %s", *sensorFile, err)
		}
	}

	// Run
	entry := sigmf.ScheduleEntry{
		Name:  *name,
		Start: time.Now().UTC().Format(time.RFC3339),
	}
	if err := action.Run(ctx, entry, *taskID, sensor); err != nil {
		glog.Exitf("sweep failed: %s", err)
	}

	glog.Flush()
}
