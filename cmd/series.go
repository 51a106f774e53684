package cmd

import (
	"github.com/snapseries/snapseries/core"
	"github.com/snapseries/snapseries/internal/contract"
	"github.com/spf13/cobra"
)

// seriesCmd builds the series without rendering a chart.
var seriesCmd = &cobra.Command{
	Use:   "series [snapshot-dir]",
	Short: "Show the deduplicated time series built from a snapshot directory.",
	Long: `Read every dated snapshot in a directory and print the series that would be charted.

Snapshot files are picked up when their name ends in a Unix timestamp suffix
(for example state.1700000000).
Each snapshot contributes one value (the number of entities in the configured
collection), and repeated values are collapsed before plotting.

Output formats:
- text    - table with deltas and a trend bar (default)
- csv     - one row per point
- json    - points plus build statistics
- parquet - columnar file (requires --output-file)

Examples:
  # Inspect the series for a backup directory
  snapseries series ./backups

  # Keep every value, even repeated ones
  snapseries series ./backups --collapse none

  # Count only entities that carry a title
  snapseries series ./backups --metric titled --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to build series", err)
		}
	},
}
