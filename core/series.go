package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/schema"
)

// snapshotFile is a directory entry with a parseable snapshot date.
type snapshotFile struct {
	name string
	date time.Time
}

// BuildSeries lists cfg.BaseDir, orders the snapshots by date, loads each one and
// reduces the result to a series according to the collapse policy.
// Only a directory read failure (or cancellation) is returned as an error; an empty
// or fully unusable directory yields an empty series.
func BuildSeries(ctx context.Context, cfg *contract.Config, loader *SnapshotLoader) (schema.Series, schema.BuildStats, error) {
	start := time.Now()
	var stats schema.BuildStats

	// --- 1. Listing ---
	files, listed, err := listSnapshotFiles(cfg.BaseDir)
	if err != nil {
		return schema.Series{}, stats, err
	}
	stats.FilesListed = listed
	stats.Timestamped = len(files)

	// --- 2. Ordering ---
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].date.Before(files[j].date)
	})
	stats.ListDuration = time.Since(start)

	// --- 3. Loading ---
	loadStart := time.Now()
	points := make([]schema.SeriesPoint, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return schema.Series{}, stats, err
		}
		point, ok := loader.Load(cfg.BaseDir, f.name, f.date)
		if !ok {
			continue
		}
		points = append(points, point)
	}
	stats.Loaded = len(points)
	stats.LoadDuration = time.Since(loadStart)

	// --- 4. Label deduplication ---
	points = dedupLabels(points)
	stats.UniqueLabels = len(points)

	// --- 5. Collapsing ---
	points = collapse(points, cfg.Collapse)
	stats.Plotted = len(points)
	stats.TotalDuration = time.Since(start)

	slog.Debug("Series built",
		"dir", cfg.BaseDir,
		"listed", stats.FilesListed,
		"timestamped", stats.Timestamped,
		"loaded", stats.Loaded,
		"plotted", stats.Plotted,
		"duration", stats.TotalDuration)

	return schema.Series{Points: points}, stats, nil
}

// listSnapshotFiles returns the non-directory entries in dir that carry a snapshot date,
// along with the number of entries seen. Symlinks count as files unless they resolve
// to a directory; broken ones are left for the loader to reject.
func listSnapshotFiles(dir string) ([]snapshotFile, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read snapshot directory %s: %w", dir, err)
	}
	var listed int
	files := make([]snapshotFile, 0, len(entries))
	for _, entry := range entries {
		if isDirEntry(dir, entry) {
			continue
		}
		listed++
		date, ok := DateFromFilename(entry.Name())
		if !ok {
			slog.Debug("Skipping file without timestamp", "file", entry.Name())
			continue
		}
		files = append(files, snapshotFile{name: entry.Name(), date: date})
	}
	return files, listed, nil
}

// isDirEntry reports whether entry is a directory or a symlink to one.
func isDirEntry(dir string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}

// dedupLabels keeps the first point for every label.
func dedupLabels(points []schema.SeriesPoint) []schema.SeriesPoint {
	seen := make(map[string]struct{}, len(points))
	out := make([]schema.SeriesPoint, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p.Label]; ok {
			continue
		}
		seen[p.Label] = struct{}{}
		out = append(out, p)
	}
	return out
}

// collapse drops repeated values according to the policy.
func collapse(points []schema.SeriesPoint, policy schema.CollapsePolicy) []schema.SeriesPoint {
	switch policy {
	case schema.NoCollapse:
		return points
	case schema.GlobalCollapse:
		seen := make(map[float64]struct{}, len(points))
		out := make([]schema.SeriesPoint, 0, len(points))
		for _, p := range points {
			if _, ok := seen[p.Value]; ok {
				continue
			}
			seen[p.Value] = struct{}{}
			out = append(out, p)
		}
		return out
	default:
		out := make([]schema.SeriesPoint, 0, len(points))
		for _, p := range points {
			if len(out) > 0 && out[len(out)-1].Value == p.Value {
				continue
			}
			out = append(out, p)
		}
		return out
	}
}
