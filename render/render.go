package main

/*
This application renders waterfalls for sweep recordings collected with
sweepiq into a sqlite DB.
*/

import (
	"database/sql"
	"flag"
	"fmt"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/hb9tf/sweepiq/extraction"

	// Blind import support for sqlite3.
	_ "github.com/mattn/go-sqlite3"
)

// Flags
var (
	sqliteFile   = flag.String("sqliteFile", "/tmp/sweepiq", "File path of the sqlite DB file to use.")
	recorder     = flag.String("recorder", "hackrf", "Recorder type, e.g. hackrf or rtlsdr.")
	taskID       = flag.Int64("taskID", 0, "Select recordings of this task only (0 selects all tasks).")
	startFreq    = flag.Int64("startFreq", 0, "Select recordings starting with this frequency in Hz.")
	endFreq      = flag.Int64("endFreq", math.MaxInt64, "Select recordings up to this frequency in Hz.")
	startTimeRaw = flag.String("startTime", "2000-01-02T15:04:05", "Select recordings collected after this time. Format: 2006-01-02T15:04:05")
	endTimeRaw   = flag.String("endTime", "2100-01-02T15:04:05", "Select recordings collected before this time. Format: 2006-01-02T15:04:05")
	imgPath      = flag.String("imgPath", "/tmp/out.jpg", "Path where the rendered image should be written to.")
	imgWidth     = flag.Int("imgWidth", 0, "Width of output image in pixels (0 uses the frequency resolution of the data).")
	imgHeight    = flag.Int("imgHeight", 0, "Height of output image in pixels (0 uses the time resolution of the data).")
	addGrid      = flag.Bool("grid", true, "Draw a labeled frequency/time grid around the waterfall.")
)

const timeFmt = "2006-01-02T15:04:05"

func main() {
	// Set defaults for glog flags. Can be overridden via cmdline.
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "WARNING")
	flag.Set("v", "1")
	// Parse flags globally.
	flag.Parse()

	startTime, err := time.Parse(timeFmt, *startTimeRaw)
	if err != nil {
		glog.Fatalf("unable to parse startTime (value: %q, format: %q): %s", *startTimeRaw, timeFmt, err)
	}
	endTime, err := time.Parse(timeFmt, *endTimeRaw)
	if err != nil {
		glog.Fatalf("unable to parse endTime (value: %q, format: %q): %s", *endTimeRaw, timeFmt, err)
	}

	db, err := sql.Open("sqlite3", *sqliteFile)
	if err != nil {
		glog.Fatalf("unable to open sqlite DB %q: %s", *sqliteFile, err)
	}

	result, err := extraction.Render(db, &extraction.RenderRequest{
		Filter: &extraction.FilterOptions{
			Recorder:  *recorder,
			TaskID:    *taskID,
			StartFreq: *startFreq,
			EndFreq:   *endFreq,
			StartTime: startTime,
			EndTime:   endTime,
		},
		Image: &extraction.ImageOptions{
			Height:  *imgHeight,
			Width:   *imgWidth,
			AddGrid: *addGrid,
		},
	})
	if err != nil {
		glog.Fatalf("unable to render waterfall: %s", err)
	}

	fmt.Println("Selected source metadata:")
	fmt.Printf("  - Low frequency: %s\n", extraction.GetReadableFreq(result.SourceMeta.LowFreq))
	fmt.Printf("  - High frequency: %s\n", extraction.GetReadableFreq(result.SourceMeta.HighFreq))
	fmt.Printf("  - Start time: %s\n", result.SourceMeta.StartTime.Format(timeFmt))
	fmt.Printf("  - End time: %s\n", result.SourceMeta.EndTime.Format(timeFmt))
	fmt.Printf("Rendered image (%d x %d)\n", result.ImageMeta.ImageWidth, result.ImageMeta.ImageHeight)

	fmt.Printf("Writing image to %q\n", *imgPath)
	f, err := os.Create(*imgPath)
	if err != nil {
		glog.Fatalf("unable to create image file %q: %s", *imgPath, err)
	}
	defer f.Close()
	switch {
	case strings.HasSuffix(*imgPath, ".png"):
		png.Encode(f, result.Image)
	case strings.HasSuffix(*imgPath, ".jpg"):
		jpeg.Encode(f, result.Image, &jpeg.Options{Quality: jpeg.DefaultQuality})
	default:
		glog.Fatalf("unsupported image suffix in %q, use .png or .jpg", *imgPath)
	}

	glog.Flush()
}
