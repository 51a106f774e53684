// Package parquet provides data structures and functions for exporting snapseries
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/snapseries/snapseries/schema"
)

// SeriesPoint is one plotted point of a freshly built series.
type SeriesPoint struct {
	// Index is the 1-based position of the point on the x-axis
	Index int32 `parquet:"index,snappy"`

	// Label is the formatted calendar date shown under the point
	Label string `parquet:"label,snappy"`

	// Value is the metric extracted from the snapshot
	Value float64 `parquet:"value,snappy"`

	// Delta is the change against the previous point, 0 for the first
	Delta float64 `parquet:"delta,snappy"`

	// SnapTime is the snapshot date at midnight UTC
	SnapTime time.Time `parquet:"snap_time,snappy"`

	// File is the snapshot file the point was loaded from
	File string `parquet:"file,snappy"`
}

// Run represents a single recorded render run.
// This struct maps to the snapseries_runs database table.
type Run struct {
	RunID         int64      `parquet:"run_id,snappy"`
	RunUUID       string     `parquet:"run_uuid,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`
	BaseDir       string     `parquet:"base_dir,snappy"`
	FilesListed   int32      `parquet:"files_listed,snappy"`
	SnapshotsUsed int32      `parquet:"snapshots_used,snappy"`
	PointsPlotted int32      `parquet:"points_plotted,snappy"`
	VectorPath    *string    `parquet:"vector_path,optional,snappy"`
	RasterPath    *string    `parquet:"raster_path,optional,snappy"`
	ConfigParams  *string    `parquet:"config_params,optional,snappy"`
}

// Point represents one plotted point stored for a run.
// This struct maps to the snapseries_points database table.
type Point struct {
	RunID    int64     `parquet:"run_id,snappy"`
	Seq      int32     `parquet:"seq,snappy"`
	Label    string    `parquet:"label,snappy"`
	Value    float64   `parquet:"value,snappy"`
	SnapTime time.Time `parquet:"snap_time,snappy"`
	File     string    `parquet:"file,snappy"`
}

// writeParquet writes rows to outputPath, inferring the schema from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// WriteSeriesParquet writes the points of a series to a Parquet file.
func WriteSeriesParquet(data []SeriesPoint, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WritePointsParquet writes a slice of Point structs to a Parquet file.
func WritePointsParquet(data []Point, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertSeries converts enriched series points for Parquet export.
func ConvertSeries(points []schema.EnrichedPoint) []SeriesPoint {
	result := make([]SeriesPoint, len(points))
	for i, p := range points {
		result[i] = SeriesPoint{
			Index:    int32(p.Index),
			Label:    p.Label,
			Value:    p.Value,
			Delta:    p.Delta,
			SnapTime: p.Time,
			File:     p.File,
		}
	}
	return result
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			BaseDir:       record.BaseDir,
			FilesListed:   record.FilesListed,
			SnapshotsUsed: record.SnapshotsUsed,
			PointsPlotted: record.PointsPlotted,
			VectorPath:    record.VectorPath,
			RasterPath:    record.RasterPath,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertPointRecords converts schema.PointRecord to Point for Parquet export.
func ConvertPointRecords(records []schema.PointRecord) []Point {
	result := make([]Point, len(records))
	for i, record := range records {
		result[i] = Point(record)
	}
	return result
}
