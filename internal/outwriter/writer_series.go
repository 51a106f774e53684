package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/schema"
)

// writeJSONSeries marshals the enriched points and build stats to JSON and writes them.
func writeJSONSeries(w io.Writer, points []schema.EnrichedPoint, stats schema.BuildStats) error {
	return writeJSON(w, seriesDocument{Points: points, Stats: stats})
}

// writeCSVSeries writes one row per plotted point.
func writeCSVSeries(w io.Writer, points []schema.EnrichedPoint) error {
	header := []string{"index", "label", "value", "delta", "time", "file"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, p := range points {
			row := []string{
				formatInt(p.Index),
				p.Label,
				formatValue(p.Value),
				contract.GetPlainDelta(p.Delta, i == 0),
				p.Time.Format(contract.DateTimeFormat),
				p.File,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
