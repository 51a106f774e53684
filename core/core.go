// Package core has the snapshot-to-series pipeline and its orchestration.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/snapseries/snapseries/internal/chart"
	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/internal/outwriter"
	"github.com/snapseries/snapseries/schema"
)

// ErrNoSnapshots is returned when a directory holds no usable snapshot.
var ErrNoSnapshots = errors.New("no usable snapshots found")

// GetSeriesResults builds the series for cfg.BaseDir.
// It returns ErrNoSnapshots along with the stats when nothing could be plotted.
func GetSeriesResults(ctx context.Context, cfg *contract.Config) (schema.Series, schema.BuildStats, error) {
	loader, err := NewSnapshotLoader(cfg)
	if err != nil {
		return schema.Series{}, schema.BuildStats{}, err
	}
	series, stats, err := BuildSeries(ctx, cfg, loader)
	if err != nil {
		return schema.Series{}, stats, err
	}
	if series.Len() == 0 {
		return series, stats, fmt.Errorf("%w in %s (%d files listed)", ErrNoSnapshots, cfg.BaseDir, stats.FilesListed)
	}
	return series, stats, nil
}

// RenderChart runs the whole pipeline: build the series, write the vector chart and
// convert it to a raster image unless raster conversion is disabled.
// When a history store is configured the run and its points are recorded.
func RenderChart(ctx context.Context, cfg *contract.Config, converter contract.RasterConverter, mgr contract.HistoryManager) (result schema.RenderResult, err error) {
	start := time.Now()
	result = schema.RenderResult{RunUUID: uuid.NewString()}

	// --- 0. Begin Run Tracking (if configured) ---
	store := historyStore(mgr)
	var runID int64
	if store != nil {
		var beginErr error
		runID, beginErr = store.BeginRun(start, result.RunUUID, cfg.BaseDir, cfg.Params())
		if beginErr != nil {
			contract.LogWarn("Run history initialization failed", beginErr)
			runID = 0
		}
	}

	// --- 4. End Run Tracking ---
	// Failed runs are closed with whatever stats and artifacts they produced.
	defer func() {
		if store == nil || runID <= 0 {
			return
		}
		if err == nil {
			if recErr := store.RecordPoints(runID, result.Series.Points); recErr != nil {
				contract.LogWarn("Failed to record plotted points", recErr)
			}
		}
		if endErr := store.EndRun(runID, time.Now(), result.Stats, result.VectorPath, result.RasterPath); endErr != nil {
			contract.LogWarn("Failed to finalize run history", endErr)
		}
	}()

	// --- 1. Series ---
	series, stats, err := GetSeriesResults(ctx, cfg)
	result.Stats = stats
	if err != nil {
		return result, err
	}
	result.Series = series

	// --- 2. Vector chart ---
	style, err := chart.NewStyle(cfg.Style)
	if err != nil {
		return result, err
	}
	layout, err := chart.RenderFile(cfg.VectorFile, series, chart.OptionsFromConfig(cfg), style)
	if err != nil {
		return result, err
	}
	result.VectorPath = cfg.VectorFile
	result.YMin, result.YMax = layout.Y.Domain()

	// --- 3. Raster image ---
	if cfg.Raster != schema.NoRaster && converter != nil {
		out, convErr := converter.Convert(ctx, cfg.VectorFile, cfg.RasterFile, cfg.RasterOptions())
		result.Converter = out.Text()
		if convErr != nil {
			return result, fmt.Errorf("%s conversion failed: %w", converter.Name(), convErr)
		}
		result.RasterPath = cfg.RasterFile
	}
	result.Duration = time.Since(start)

	return result, nil
}

// ExecuteSeries builds the series and prints it without rendering.
// It serves as the main entry point for the 'series' command.
func ExecuteSeries(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	if cfg.Output == schema.TextOut {
		outwriter.LogSeriesHeader(cfg)
	}
	series, stats, err := GetSeriesResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintSeriesResults(series, stats, cfg, time.Since(start))
}

// ExecuteRender runs the whole pipeline and prints a summary.
// It serves as the main entry point for the 'render' command.
func ExecuteRender(ctx context.Context, cfg *contract.Config, converter contract.RasterConverter, mgr contract.HistoryManager) error {
	if cfg.Output == schema.TextOut {
		outwriter.LogRenderHeader(cfg)
	}
	result, err := RenderChart(ctx, cfg, converter, mgr)
	if err != nil {
		if result.Converter != "" {
			_, _ = fmt.Fprintln(os.Stderr, result.Converter)
		}
		return err
	}
	return outwriter.PrintRenderSummary(result, cfg)
}

// historyStore returns the configured history store, or nil when tracking is off.
func historyStore(mgr contract.HistoryManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}
