package core

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/schema"
)

// MetricExtractor turns the collection of a snapshot into a number.
type MetricExtractor interface {
	// Rule returns the metric rule implemented by the extractor.
	Rule() schema.MetricRule

	// Extract computes the metric for the given collection entries.
	Extract(entries []any) float64
}

// countExtractor counts every entity in the collection.
type countExtractor struct{}

func (countExtractor) Rule() schema.MetricRule { return schema.CountRule }

func (countExtractor) Extract(entries []any) float64 {
	return float64(len(entries))
}

// titledExtractor counts entities that carry a non-empty string title.
type titledExtractor struct {
	field string
}

func (titledExtractor) Rule() schema.MetricRule { return schema.TitledRule }

func (e titledExtractor) Extract(entries []any) float64 {
	var n int
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if title, ok := obj[e.field].(string); ok && title != "" {
			n++
		}
	}
	return float64(n)
}

// NewMetricExtractor returns the extractor selected by the config.
func NewMetricExtractor(cfg *contract.Config) (MetricExtractor, error) {
	switch cfg.Metric {
	case schema.CountRule, "":
		return countExtractor{}, nil
	case schema.TitledRule:
		return titledExtractor{field: cfg.TitleField}, nil
	default:
		return nil, fmt.Errorf("unknown metric rule: %s", cfg.Metric)
	}
}

// SnapshotLoader reads snapshot documents and reduces them to series points.
type SnapshotLoader struct {
	collection string
	dateFormat string
	extractor  MetricExtractor
}

// NewSnapshotLoader builds a loader from the validated config.
func NewSnapshotLoader(cfg *contract.Config) (*SnapshotLoader, error) {
	extractor, err := NewMetricExtractor(cfg)
	if err != nil {
		return nil, err
	}
	collection := cfg.Collection
	if collection == "" {
		collection = contract.DefaultCollection
	}
	dateFormat := cfg.DateFormat
	if dateFormat == "" {
		dateFormat = contract.DefaultDateFormat
	}
	return &SnapshotLoader{
		collection: collection,
		dateFormat: dateFormat,
		extractor:  extractor,
	}, nil
}

// Load reads dir/name and returns the point for the given snapshot date.
// Any read or parse failure makes the snapshot unusable and ok is false.
func (l *SnapshotLoader) Load(dir, name string, date time.Time) (schema.SeriesPoint, bool) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		slog.Debug("Skipping unreadable snapshot", "file", name, "error", err)
		return schema.SeriesPoint{}, false
	}
	value, ok := l.Measure(data)
	if !ok {
		slog.Debug("Skipping unusable snapshot", "file", name)
		return schema.SeriesPoint{}, false
	}
	return schema.SeriesPoint{
		Label: date.Format(l.dateFormat),
		Value: value,
		Time:  date,
		File:  name,
	}, true
}

// Measure parses a snapshot document and applies the metric to its collection.
// It reports false when the document is not a JSON object or the collection is missing or not a list.
func (l *SnapshotLoader) Measure(data []byte) (float64, bool) {
	var doc map[string]any
	if err := sonic.Unmarshal(data, &doc); err != nil || doc == nil {
		return 0, false
	}
	entries, ok := doc[l.collection].([]any)
	if !ok {
		return 0, false
	}
	return l.extractor.Extract(entries), true
}
