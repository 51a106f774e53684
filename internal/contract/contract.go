// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/snapseries/snapseries/schema"
)

// RasterOptions carries the fixed argument contract of a raster conversion.
type RasterOptions struct {
	Width       int    // Target width in pixels
	Height      int    // Target height in pixels before ExtraHeight is added
	ExtraHeight int    // Extra pixels reserved for rotated tick labels
	Density     int    // Rasterization density (DPI)
	Background  string // Background color, e.g. "#111"
}

// ConvertOutput is what a raster conversion emitted.
type ConvertOutput struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Text returns the emitted output in the "stdout | stderr" form shown to operators.
// It returns an empty string when the converter was silent.
func (o ConvertOutput) Text() string {
	if len(o.Stdout) == 0 && len(o.Stderr) == 0 {
		return ""
	}
	return string(o.Stdout) + " | " + string(o.Stderr)
}

// RasterConverter turns a vector chart artifact into a raster image.
// This allows the pipeline to be tested without spawning an external process.
type RasterConverter interface {
	// Name returns a short identifier for status output.
	Name() string

	// Convert reads src and writes the raster image to dst.
	Convert(ctx context.Context, src, dst string, opts RasterOptions) (ConvertOutput, error)
}

// HistoryManager defines the interface for managing the run history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking render runs and their plotted points.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, runUUID, baseDir string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, stats schema.BuildStats, vectorPath, rasterPath string) error

	// RecordPoints stores the plotted points of a run
	RecordPoints(runID int64, points []schema.SeriesPoint) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllPoints returns every recorded point ordered by run and sequence
	GetAllPoints() ([]schema.PointRecord, error)

	// Close closes the underlying connection
	Close() error
}
