// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"path/filepath"

	"github.com/snapseries/snapseries/internal/contract"
)

// dirName returns a short display name for the snapshot directory.
func dirName(cfg *contract.Config) string {
	name := filepath.Base(cfg.BaseDir)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "current"
	}
	return name
}

// headerPrefix returns the emoji prefix for a header line, or nothing when emojis are off.
func headerPrefix(cfg *contract.Config, emoji string) string {
	if !cfg.UseEmojis {
		return ""
	}
	return emoji + " "
}

// LogSeriesHeader prints a concise, 2-line header before a series build.
func LogSeriesHeader(cfg *contract.Config) {
	// Line 1: where the snapshots come from
	fmt.Printf("%sSnapshots: %s (Metric: %s of %q)\n", headerPrefix(cfg, "🔎"), dirName(cfg), cfg.Metric, cfg.Collection)

	// Line 2: how the series is shaped
	fmt.Printf("%sLabels: %s (Collapse: %s)\n", headerPrefix(cfg, "📅"), cfg.DateFormat, cfg.Collapse)
}

// LogRenderHeader prints a header before a full render.
func LogRenderHeader(cfg *contract.Config) {
	LogSeriesHeader(cfg)
	fmt.Printf("%sChart: %q %dx%d (Style: %s, Raster: %s)\n", headerPrefix(cfg, "📊"),
		cfg.ChartTitle, cfg.PictureWidth, cfg.PictureHeight, cfg.Style, cfg.Raster)
}
