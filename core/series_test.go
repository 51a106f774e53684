package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/snapseries/snapseries/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSeries runs BuildSeries for dir with the given collapse policy.
func buildSeries(t *testing.T, dir string, policy schema.CollapsePolicy) (schema.Series, schema.BuildStats) {
	t.Helper()
	cfg := testConfig(dir)
	cfg.Collapse = policy
	loader, err := NewSnapshotLoader(cfg)
	require.NoError(t, err)
	series, stats, err := BuildSeries(context.Background(), cfg, loader)
	require.NoError(t, err)
	return series, stats
}

// pairs flattens a series into label/value pairs for compact assertions.
func pairs(s schema.Series) [][2]any {
	out := make([][2]any, len(s.Points))
	for i, p := range s.Points {
		out[i] = [2]any{p.Label, p.Value}
	}
	return out
}

func TestBuildSeries_CollapsesAdjacentValues(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "state", day1, 5)
	writeSnapshot(t, dir, "state", day2, 5)
	writeSnapshot(t, dir, "state", day3, 7)

	series, stats := buildSeries(t, dir, schema.AdjacentCollapse)

	assert.Equal(t, [][2]any{{"14.11.2023", 5.0}, {"16.11.2023", 7.0}}, pairs(series))
	assert.Equal(t, 3, stats.FilesListed)
	assert.Equal(t, 3, stats.Timestamped)
	assert.Equal(t, 3, stats.Loaded)
	assert.Equal(t, 3, stats.UniqueLabels)
	assert.Equal(t, 2, stats.Plotted)
}

func TestBuildSeries_SameDayKeepsEarlierSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "state", day1, 4)
	writeSnapshot(t, dir, "state", day1+60, 9) // same calendar day

	series, stats := buildSeries(t, dir, schema.AdjacentCollapse)

	assert.Equal(t, [][2]any{{"14.11.2023", 4.0}}, pairs(series))
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 1, stats.UniqueLabels)
}

func TestBuildSeries_EmptyDirectory(t *testing.T) {
	series, stats := buildSeries(t, t.TempDir(), schema.AdjacentCollapse)

	assert.Equal(t, 0, series.Len())
	assert.Equal(t, 0, stats.FilesListed)
	assert.Equal(t, 0, stats.Plotted)
}

func TestBuildSeries_SingleSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "state", day1, 42)

	series, _ := buildSeries(t, dir, schema.AdjacentCollapse)

	assert.Equal(t, [][2]any{{"14.11.2023", 42.0}}, pairs(series))
}

func TestBuildSeries_OrdersByTimestampNotName(t *testing.T) {
	dir := t.TempDir()
	// Lexical order is the reverse of chronological order.
	writeSnapshot(t, dir, "c", day1, 1)
	writeSnapshot(t, dir, "b", day2, 2)
	writeSnapshot(t, dir, "a", day3, 3)

	series, _ := buildSeries(t, dir, schema.AdjacentCollapse)

	require.Equal(t, 3, series.Len())
	for i := 1; i < series.Len(); i++ {
		assert.True(t, series.Points[i-1].Time.Before(series.Points[i].Time))
	}
	assert.Equal(t, []float64{1, 2, 3}, series.Values())
}

func TestBuildSeries_SkipsUnusableEntries(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "state", day1, 1)
	writeFile(t, dir, "notes.txt", "hello")
	writeFile(t, dir, "state.1700086400", "{broken")
	writeFile(t, dir, "other.1700172800", `{"users":[]}`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.1700259200"), 0o755))
	writeSnapshot(t, dir, "state", day3+86400*2, 2)

	series, stats := buildSeries(t, dir, schema.AdjacentCollapse)

	assert.Equal(t, []float64{1, 2}, series.Values())
	assert.Equal(t, 5, stats.FilesListed)
	assert.Equal(t, 4, stats.Timestamped)
	assert.Equal(t, 2, stats.Loaded)
}

func TestBuildSeries_FollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "s", day1, 5)
	target := writeSnapshot(t, dir, "s", day2, 7)
	require.NoError(t, os.Symlink(target, filepath.Join(dir, fmt.Sprintf("link.%d", day3))))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))
	require.NoError(t, os.Symlink("archive", filepath.Join(dir, fmt.Sprintf("dirlink.%d", day3+86400))))
	require.NoError(t, os.Symlink("missing", filepath.Join(dir, fmt.Sprintf("broken.%d", day3+2*86400))))

	series, stats := buildSeries(t, dir, schema.NoCollapse)

	assert.Equal(t, [][2]any{{"14.11.2023", 5.0}, {"15.11.2023", 7.0}, {"16.11.2023", 7.0}}, pairs(series))
	assert.Equal(t, 4, stats.FilesListed)
	assert.Equal(t, 4, stats.Timestamped)
	assert.Equal(t, 3, stats.Loaded)
}

func TestBuildSeries_CollapsePolicies(t *testing.T) {
	values := []int{3, 3, 5, 3, 5, 5, 8}
	tests := []struct {
		policy schema.CollapsePolicy
		want   []float64
	}{
		{policy: schema.AdjacentCollapse, want: []float64{3, 5, 3, 5, 8}},
		{policy: schema.NoCollapse, want: []float64{3, 3, 5, 3, 5, 5, 8}},
		{policy: schema.GlobalCollapse, want: []float64{3, 5, 8}},
	}

	dir := t.TempDir()
	for i, v := range values {
		writeSnapshot(t, dir, "state", day1+int64(i)*86400, v)
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			series, _ := buildSeries(t, dir, tt.policy)
			assert.Equal(t, tt.want, series.Values())
		})
	}
}

func TestBuildSeries_Invariants(t *testing.T) {
	dir := t.TempDir()
	counts := []int{1, 1, 2, 2, 2, 3, 1, 1, 4}
	for i, c := range counts {
		writeSnapshot(t, dir, "state", day1+int64(i)*43200, c) // two snapshots per day
	}

	first, _ := buildSeries(t, dir, schema.AdjacentCollapse)
	second, _ := buildSeries(t, dir, schema.AdjacentCollapse)
	assert.Equal(t, first, second, "building twice must give the same series")

	labels := make(map[string]bool)
	for i, p := range first.Points {
		assert.False(t, labels[p.Label], "duplicate label %s", p.Label)
		labels[p.Label] = true
		if i > 0 {
			assert.NotEqual(t, first.Points[i-1].Value, p.Value)
			assert.True(t, first.Points[i-1].Time.Before(p.Time))
		}
	}
}

func TestBuildSeries_MissingDirectory(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing"))
	loader, err := NewSnapshotLoader(cfg)
	require.NoError(t, err)

	_, _, err = BuildSeries(context.Background(), cfg, loader)
	assert.Error(t, err)
}

func TestBuildSeries_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "state", day1, 1)
	cfg := testConfig(dir)
	loader, err := NewSnapshotLoader(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = BuildSeries(ctx, cfg, loader)
	assert.ErrorIs(t, err, context.Canceled)
}
