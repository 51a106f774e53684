package cmd

import (
	"github.com/snapseries/snapseries/internal/history"
	"github.com/snapseries/snapseries/internal/mcp"
	"github.com/snapseries/snapseries/internal/raster"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [snapshot-dir]",
	Short: "Start the snapseries MCP server",
	Long:  `Launch an MCP server over stdio that lets AI agents build series and render charts via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Tools name their own directory, the base one only has to exist
		if len(args) == 0 && viper.GetString("dir") == "" {
			args = []string{"."}
		}
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, history.Manager, raster.NewConverter)
	},
}
