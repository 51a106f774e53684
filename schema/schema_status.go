package schema

import "time"

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalPoints   int              `json:"total_points"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the snapseries_runs table.
type RunRecord struct {
	RunID         int64
	RunUUID       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	BaseDir       string
	FilesListed   int32
	SnapshotsUsed int32
	PointsPlotted int32
	VectorPath    *string
	RasterPath    *string
	ConfigParams  *string
}

// PointRecord represents a row from the snapseries_points table.
type PointRecord struct {
	RunID    int64
	Seq      int32
	Label    string
	Value    float64
	SnapTime time.Time
	File     string
}
