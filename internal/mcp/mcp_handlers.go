package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/snapseries/snapseries/core"
	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg      *contract.Config
	mgr          contract.HistoryManager
	newConverter ConverterFactory
}

// applySeriesArgs copies the series-shaping arguments of a request onto cfg.
func applySeriesArgs(cfg *contract.Config, request mcp.CallToolRequest) {
	if d := request.GetString("dir", ""); d != "" {
		cfg.BaseDir = d
	}
	if m := request.GetString("metric", ""); m != "" {
		cfg.Metric = schema.MetricRule(strings.ToLower(m))
	}
	if c := request.GetString("collection", ""); c != "" {
		cfg.Collection = c
	}
	if c := request.GetString("collapse", ""); c != "" {
		cfg.Collapse = schema.CollapsePolicy(strings.ToLower(c))
	}
}

func (h *toolHandler) handleBuildSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applySeriesArgs(cfg, request)

	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid series parameters: %v", err)), nil
	}

	series, stats, err := core.GetSeriesResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("series build failed: %v", err)), nil
	}

	payload := map[string]any{
		"points": schema.EnrichPoints(series.Points),
		"stats":  stats,
	}
	jsonData, _ := sonic.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRenderChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applySeriesArgs(cfg, request)
	if t := request.GetString("title", ""); t != "" {
		cfg.ChartTitle = t
	}
	if s := request.GetString("style", ""); s != "" {
		cfg.Style = schema.ChartStyleName(strings.ToLower(s))
	}
	if f := request.GetString("svg_file", ""); f != "" {
		cfg.VectorFile = f
	}
	if f := request.GetString("png_file", ""); f != "" {
		cfg.RasterFile = f
	}
	if r := request.GetString("raster", ""); r != "" {
		cfg.Raster = schema.RasterBackend(strings.ToLower(r))
	}
	if size := request.GetString("size", ""); size != "" {
		w, hgt, err := contract.ParsePictureSize(size)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid render parameters: %v", err)), nil
		}
		cfg.PictureWidth, cfg.PictureHeight = w, hgt
	}

	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid render parameters: %v", err)), nil
	}
	if _, ok := schema.ValidRasterBackends[cfg.Raster]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid render parameters: raster backend '%s'", cfg.Raster)), nil
	}

	var converter contract.RasterConverter
	if h.newConverter != nil {
		converter = h.newConverter(cfg)
	}

	result, err := core.RenderChart(ctx, cfg, converter, h.mgr)
	if err != nil {
		msg := fmt.Sprintf("render failed: %v", err)
		if result.Converter != "" {
			msg += "\nconverter output: " + result.Converter
		}
		return mcp.NewToolResultError(msg), nil
	}

	jsonData, _ := sonic.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
