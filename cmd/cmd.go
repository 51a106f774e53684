// Package cmd defines the command-line interface for snapseries.
package cmd

import (
	"fmt"

	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("dir", "", "Snapshot directory (the positional argument takes precedence)")
	rootCmd.PersistentFlags().String("title", contract.DefaultChartTitle, "Chart title")
	rootCmd.PersistentFlags().String("size", fmt.Sprintf("%dx%d", contract.DefaultPictureWidth, contract.DefaultPictureHeight), "Picture size as WIDTHxHEIGHT")
	rootCmd.PersistentFlags().String("metric", string(schema.CountRule), "Metric rule: count or titled")
	rootCmd.PersistentFlags().String("collection", contract.DefaultCollection, "Top-level snapshot field holding the entity list")
	rootCmd.PersistentFlags().String("title-field", contract.DefaultTitleField, "Entity field checked by the titled metric")
	rootCmd.PersistentFlags().String("collapse", string(schema.AdjacentCollapse), "Collapse policy: adjacent or none or global")
	rootCmd.PersistentFlags().String("date-format", contract.DefaultDateFormat, "Go time layout for point labels")
	rootCmd.PersistentFlags().Float64("pad", contract.DefaultPad, "Padding added around the y-axis domain")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("term-width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("log-level", "info", "Diagnostic log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored deltas in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of renderCmd to Viper
	renderCmd.Flags().String("svg-file", contract.DefaultVectorFile, "Path of the SVG chart")
	renderCmd.Flags().String("png-file", contract.DefaultRasterFile, "Path of the PNG chart")
	renderCmd.Flags().String("style", string(schema.LineStyle), "Chart style: line or grid")
	renderCmd.Flags().Float64("grid-step", contract.DefaultGridStep, "Value spacing of horizontal grid lines (grid style, 0 disables them)")
	renderCmd.Flags().String("raster", string(schema.ImageMagickRaster), "Raster backend: imagemagick or none")
	renderCmd.Flags().String("converter", contract.DefaultConverter, "ImageMagick binary used for raster conversion")
	renderCmd.Flags().Int("density", contract.DefaultDensity, "Rasterization density in DPI")
	renderCmd.Flags().String("background", contract.DefaultBackground, "Background color of the raster image")
	renderCmd.Flags().Int("extra-height", contract.DefaultExtraHeight, "Extra pixels added to the raster height")
	if err := viper.BindPFlags(renderCmd.Flags()); err != nil {
		contract.LogFatal("Error binding render flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
