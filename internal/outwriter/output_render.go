package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/internal/parquet"
	"github.com/snapseries/snapseries/schema"
)

// PrintRenderSummary reports a finished render using the configured output format.
// Text output is a short summary. Other formats carry the plotted series.
func PrintRenderSummary(result schema.RenderResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON render result"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSeries(w, schema.EnrichPoints(result.Series.Points))
		}, "Wrote CSV series"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		points := parquet.ConvertSeries(schema.EnrichPoints(result.Series.Points))
		if err := parquet.WriteSeriesParquet(points, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet series to %s\n", cfg.OutputFile)
	default:
		return WriteRenderSummary(os.Stdout, result, cfg)
	}
	return nil
}

// WriteRenderSummary writes a human-readable summary of a render to w.
func WriteRenderSummary(w io.Writer, result schema.RenderResult, cfg *contract.Config) error {
	lines := []string{
		fmt.Sprintf("%sVector: %s", headerPrefix(cfg, "💾"), result.VectorPath),
	}
	if result.RasterPath != "" {
		lines = append(lines, fmt.Sprintf("%sRaster: %s", headerPrefix(cfg, "🖼️"), result.RasterPath))
	}
	if result.Converter != "" {
		lines = append(lines, fmt.Sprintf("Converter output: %s", result.Converter))
	}
	lines = append(lines,
		fmt.Sprintf("Plotted %d points (y-axis %s to %s)", result.Series.Len(), formatValue(result.YMin), formatValue(result.YMax)),
		fmt.Sprintf("Render completed in %v: %d files listed, %d loaded. Run: %s",
			result.Duration, result.Stats.FilesListed, result.Stats.Loaded, result.RunUUID),
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
