// Package schema has models, constants and shared types for all parts of snapseries.
package schema

import "time"

// SeriesPoint is a single plottable value derived from one snapshot.
type SeriesPoint struct {
	Label string    `json:"label"` // Formatted calendar date shown on the x-axis
	Value float64   `json:"value"` // Metric extracted from the snapshot
	Time  time.Time `json:"time"`  // Snapshot date truncated to midnight UTC
	File  string    `json:"file"`  // Snapshot file name the point was loaded from
}

// Series is an ordered sequence of points, ascending by Time.
type Series struct {
	Points []SeriesPoint `json:"points"`
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Points)
}

// Labels returns the point labels in series order.
func (s Series) Labels() []string {
	labels := make([]string, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Label
	}
	return labels
}

// Values returns the point values in series order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// BuildStats records how many snapshots survived each stage of the series build.
type BuildStats struct {
	FilesListed   int           `json:"files_listed"`   // Regular files found in the directory
	Timestamped   int           `json:"timestamped"`    // Files with a parseable trailing timestamp
	Loaded        int           `json:"loaded"`         // Snapshots that parsed and yielded a metric
	UniqueLabels  int           `json:"unique_labels"`  // Snapshots left after label deduplication
	Plotted       int           `json:"plotted"`        // Points left after collapsing
	ListDuration  time.Duration `json:"list_duration"`  // Time spent listing and sorting
	LoadDuration  time.Duration `json:"load_duration"`  // Time spent reading and parsing snapshots
	TotalDuration time.Duration `json:"total_duration"` // Wall time of the whole build
}
