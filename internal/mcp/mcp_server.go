// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/snapseries/snapseries/internal/contract"
)

// ConverterFactory builds the raster converter for one request's config.
type ConverterFactory func(cfg *contract.Config) contract.RasterConverter

// NewMCPServer initializes and configures the snapseries MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager, newConverter ConverterFactory) *server.MCPServer {
	s := server.NewMCPServer(
		"Snapshot Series Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:      baseCfg,
		mgr:          mgr,
		newConverter: newConverter,
	}

	// --- 1. Tool: build_series ---
	s.AddTool(mcp.NewTool("build_series",
		mcp.WithDescription("Build the daily time series of a metric from a directory of timestamped JSON snapshots."),
		mcp.WithString("dir", mcp.Description("Directory holding the snapshot files (defaults to the configured directory).")),
		mcp.WithString("metric", mcp.Description("How a snapshot becomes a number. Defaults to 'count'."), mcp.Enum("count", "titled")),
		mcp.WithString("collection", mcp.Description("Top-level array field that is measured.")),
		mcp.WithString("collapse", mcp.Description("Which repeated values are dropped."), mcp.Enum("adjacent", "none", "global")),
	), h.handleBuildSeries)

	// --- 2. Tool: render_chart ---
	s.AddTool(mcp.NewTool("render_chart",
		mcp.WithDescription("Build the series and render it as an SVG chart, optionally converted to PNG."),
		mcp.WithString("dir", mcp.Description("Directory holding the snapshot files.")),
		mcp.WithString("title", mcp.Description("Chart title.")),
		mcp.WithString("size", mcp.Description("Picture size as WIDTHxHEIGHT, e.g. '1920x1080'.")),
		mcp.WithString("style", mcp.Description("Chart style."), mcp.Enum("line", "grid")),
		mcp.WithString("svg_file", mcp.Description("Where to write the vector chart.")),
		mcp.WithString("png_file", mcp.Description("Where to write the raster image.")),
		mcp.WithString("raster", mcp.Description("Raster backend, 'none' stops after the SVG."), mcp.Enum("imagemagick", "none")),
	), h.handleRenderChart)

	return s
}

// StartMCPServer starts the snapseries MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager, newConverter ConverterFactory) error {
	s := NewMCPServer(baseCfg, mgr, newConverter)
	return server.ServeStdio(s)
}
