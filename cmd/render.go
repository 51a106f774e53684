package cmd

import (
	"github.com/snapseries/snapseries/core"
	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/internal/history"
	"github.com/snapseries/snapseries/internal/raster"
	"github.com/spf13/cobra"
)

// renderCmd runs the full snapshot-to-chart pipeline.
var renderCmd = &cobra.Command{
	Use:   "render [snapshot-dir]",
	Short: "Render the series of a snapshot directory as an SVG and PNG chart.",
	Long: `Build the series for a snapshot directory, draw it as an SVG chart and
convert the SVG into a PNG image with ImageMagick.

The y-axis spans the smallest to the largest value padded by --pad. The line
style draws a connected path with one marker per point, the grid style adds
horizontal grid lines every --grid-step units.

Use --raster none to stop after the SVG (no external process is started).
With --history-backend set, each render is recorded for later export.

Examples:
  # Render with the defaults (chart.svg and chart.png)
  snapseries render ./backups

  # Custom title and size, SVG only
  snapseries render ./backups --title "Open chats" --size 1280x720 --raster none

  # Record the run in a local SQLite history
  snapseries render ./backups --history-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRender(rootCtx, cfg, raster.NewConverter(cfg), history.Manager); err != nil {
			contract.LogFatal("Failed to render chart", err)
		}
	},
}
