package outwriter

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/parquet-go/parquet-go"
	"github.com/snapseries/snapseries/internal/contract"
	pq "github.com/snapseries/snapseries/internal/parquet"
	"github.com/snapseries/snapseries/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC)

func testSeries() schema.Series {
	return schema.Series{Points: []schema.SeriesPoint{
		{Label: "14.11.2023", Value: 5, Time: testDay, File: "snap.1700000000"},
		{Label: "16.11.2023", Value: 7, Time: testDay.AddDate(0, 0, 2), File: "snap.1700172800"},
		{Label: "17.11.2023", Value: 6.5, Time: testDay.AddDate(0, 0, 3), File: "snap.1700259200"},
	}}
}

func testStats() schema.BuildStats {
	return schema.BuildStats{FilesListed: 4, Timestamped: 4, Loaded: 3, UniqueLabels: 3, Plotted: 3}
}

func TestWriteSeriesTable(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut, TermWidth: 100}

	var buf bytes.Buffer
	err := WriteSeriesTable(&buf, schema.EnrichPoints(testSeries().Points), testStats(), cfg, 120*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "14.11.2023")
	assert.Contains(t, out, "6.5")
	assert.Contains(t, out, "start")
	assert.Contains(t, out, "+2")
	assert.Contains(t, out, "-0.5")
	assert.Contains(t, out, strings.Repeat("█", 50), "largest value fills the bar")
	assert.Contains(t, out, "Series built in 120ms: 4 files listed, 4 timestamped, 3 loaded, 3 plotted")
}

func TestWriteCSVSeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVSeries(&buf, schema.EnrichPoints(testSeries().Points)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"index", "label", "value", "delta", "time", "file"}, records[0])
	assert.Equal(t, []string{"1", "14.11.2023", "5", "start", "2023-11-14T00:00:00Z", "snap.1700000000"}, records[1])
	assert.Equal(t, "-0.5", records[3][3])
}

func TestWriteJSONSeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONSeries(&buf, schema.EnrichPoints(testSeries().Points), testStats()))

	var doc struct {
		Points []struct {
			Index int     `json:"index"`
			Label string  `json:"label"`
			Value float64 `json:"value"`
			Delta float64 `json:"delta"`
		} `json:"points"`
		Stats struct {
			Plotted int `json:"plotted"`
		} `json:"stats"`
	}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Points, 3)
	assert.Equal(t, 2, doc.Points[1].Index)
	assert.Equal(t, "16.11.2023", doc.Points[1].Label)
	assert.InDelta(t, 2.0, doc.Points[1].Delta, 1e-9)
	assert.Equal(t, 3, doc.Stats.Plotted)
}

func TestPrintSeriesResults_Files(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		output schema.OutputMode
		file   string
		check  func(t *testing.T, path string)
	}{
		{
			name:   "csv",
			output: schema.CSVOut,
			file:   "series.csv",
			check: func(t *testing.T, path string) {
				assert.FileExists(t, path)
			},
		},
		{
			name:   "json",
			output: schema.JSONOut,
			file:   "series.json",
			check: func(t *testing.T, path string) {
				assert.FileExists(t, path)
			},
		},
		{
			name:   "parquet",
			output: schema.ParquetOut,
			file:   "series.parquet",
			check: func(t *testing.T, path string) {
				rows, err := parquet.ReadFile[pq.SeriesPoint](path)
				require.NoError(t, err)
				assert.Len(t, rows, 3)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			cfg := &contract.Config{Output: tt.output, OutputFile: path}
			require.NoError(t, PrintSeriesResults(testSeries(), testStats(), cfg, time.Second))
			tt.check(t, path)
		})
	}
}

func TestTrendBar(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		lo, hi float64
		width  int
		want   int
	}{
		{"minimum", 0, 0, 10, 20, 1},
		{"maximum", 10, 0, 10, 20, 20},
		{"middle", 5, 0, 10, 21, 11},
		{"flat series", 3, 3, 3, 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := trendBar(tt.v, tt.lo, tt.hi, tt.width)
			assert.Equal(t, tt.want, len([]rune(bar)))
		})
	}
}

func TestGetTrendBarWidth(t *testing.T) {
	tests := []struct {
		termWidth int
		want      int
	}{
		{termWidth: 40, want: 10},
		{termWidth: 80, want: 30},
		{termWidth: 200, want: 60},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetTrendBarWidth(&contract.Config{TermWidth: tt.termWidth}))
	}
}

func TestValueBounds(t *testing.T) {
	lo, hi := valueBounds(schema.EnrichPoints(testSeries().Points))
	assert.InDelta(t, 5.0, lo, 1e-9)
	assert.InDelta(t, 7.0, hi, 1e-9)

	lo, hi = valueBounds(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}
