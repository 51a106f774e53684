package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/internal/parquet"
	"github.com/snapseries/snapseries/schema"
)

// seriesDocument is the JSON shape of a series listing.
type seriesDocument struct {
	Points []schema.EnrichedPoint `json:"points"`
	Stats  schema.BuildStats      `json:"stats"`
}

// PrintSeriesResults outputs the series, dispatching based on the output format configured.
func PrintSeriesResults(series schema.Series, stats schema.BuildStats, cfg *contract.Config, duration time.Duration) error {
	points := schema.EnrichPoints(series.Points)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONSeries(w, points, stats)
		}, "Wrote JSON series"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSeries(w, points)
		}, "Wrote CSV series"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteSeriesParquet(parquet.ConvertSeries(points), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet series to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		if err := WriteSeriesTable(os.Stdout, points, stats, cfg, duration); err != nil {
			return fmt.Errorf("error writing series table output: %w", err)
		}
	}
	return nil
}

// WriteSeriesTable prints the series as a table with a trend bar per point.
func WriteSeriesTable(w io.Writer, points []schema.EnrichedPoint, stats schema.BuildStats, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// --- 1. Define Headers ---
	table.Header([]string{"#", "Date", "Value", "Delta", "Trend"})

	// --- 2. Configure Alignment ---
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.PerColumn = []tw.Align{tw.AlignRight, tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignLeft}
	})

	// --- 3. Prepare Data Rows ---
	lo, hi := valueBounds(points)
	barWidth := GetTrendBarWidth(cfg)
	data := make([][]string, 0, len(points))
	for i, p := range points {
		delta := contract.GetPlainDelta(p.Delta, i == 0)
		if cfg.UseColors {
			delta = contract.GetColorDelta(p.Delta, i == 0)
		}
		data = append(data, []string{
			formatInt(p.Index),
			p.Label,
			formatValue(p.Value),
			delta,
			trendBar(p.Value, lo, hi, barWidth),
		})
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Series built in %v: %d files listed, %d timestamped, %d loaded, %d plotted\n",
		duration, stats.FilesListed, stats.Timestamped, stats.Loaded, stats.Plotted)
	return err
}

// valueBounds returns the smallest and largest value of the points.
func valueBounds(points []schema.EnrichedPoint) (lo, hi float64) {
	for i, p := range points {
		if i == 0 || p.Value < lo {
			lo = p.Value
		}
		if i == 0 || p.Value > hi {
			hi = p.Value
		}
	}
	return lo, hi
}

// trendBar draws v as a bar between 1 and width cells wide, scaled into [lo, hi].
func trendBar(v, lo, hi float64, width int) string {
	cells := width
	if hi > lo {
		cells = 1 + int((v-lo)/(hi-lo)*float64(width-1)+0.5)
	}
	bar := make([]rune, cells)
	for i := range bar {
		bar[i] = '█'
	}
	return string(bar)
}
