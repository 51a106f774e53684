package mcp_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/snapseries/snapseries/internal/contract"
	mcp_internal "github.com/snapseries/snapseries/internal/mcp"
	"github.com/snapseries/snapseries/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func baseConfig(dir string) *contract.Config {
	return &contract.Config{
		BaseDir:       dir,
		ChartTitle:    contract.DefaultChartTitle,
		PictureWidth:  contract.DefaultPictureWidth,
		PictureHeight: contract.DefaultPictureHeight,
		VectorFile:    filepath.Join(dir, "out", "chart.svg"),
		RasterFile:    filepath.Join(dir, "out", "chart.png"),
		Metric:        schema.CountRule,
		Collection:    contract.DefaultCollection,
		TitleField:    contract.DefaultTitleField,
		Collapse:      schema.AdjacentCollapse,
		DateFormat:    contract.DefaultDateFormat,
		Style:         schema.LineStyle,
		Pad:           contract.DefaultPad,
		GridStep:      contract.DefaultGridStep,
		Raster:        schema.NoRaster,
	}
}

// writeSnapshots writes one snapshot per value on consecutive days.
func writeSnapshots(t *testing.T, dir string, values ...int) {
	t.Helper()
	for i, n := range values {
		chats := strings.TrimSuffix(strings.Repeat(`{"title":"x"},`, n), ",")
		name := fmt.Sprintf("result.%d", 1700000000+i*86400)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{"chats":[`+chats+`]}`), 0o644))
	}
}

func callTool(t *testing.T, cfg *contract.Config, factory mcp_internal.ConverterFactory, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(cfg, nil, factory)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestBuildSeriesTool(t *testing.T) {
	dir := t.TempDir()
	writeSnapshots(t, dir, 3, 3, 4)

	res := callTool(t, baseConfig(dir), nil, "build_series", map[string]any{})
	assert.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), `"label": "14.11.2023"`)
	assert.Contains(t, resultText(res), `"plotted": 2`)

	res = callTool(t, baseConfig(dir), nil, "build_series", map[string]any{"collapse": "none"})
	assert.Contains(t, resultText(res), `"plotted": 3`)
}

func TestBuildSeriesTool_Errors(t *testing.T) {
	t.Run("invalid metric", func(t *testing.T) {
		res := callTool(t, baseConfig(t.TempDir()), nil, "build_series", map[string]any{"metric": "sum"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "invalid metric 'sum'")
	})

	t.Run("empty directory", func(t *testing.T) {
		res := callTool(t, baseConfig(t.TempDir()), nil, "build_series", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "no usable snapshots")
	})
}

func TestRenderChartTool(t *testing.T) {
	dir := t.TempDir()
	writeSnapshots(t, dir, 1, 2)
	cfg := baseConfig(dir)
	svg := filepath.Join(t.TempDir(), "agent.svg")

	res := callTool(t, cfg, nil, "render_chart", map[string]any{
		"svg_file": svg,
		"style":    "grid",
		"size":     "800x600",
	})
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), `"vector_path": "`+svg+`"`)
	assert.FileExists(t, svg)
}

func TestRenderChartTool_UsesConverter(t *testing.T) {
	dir := t.TempDir()
	writeSnapshots(t, dir, 1)
	cfg := baseConfig(dir)
	out := t.TempDir()
	svg, png := filepath.Join(out, "c.svg"), filepath.Join(out, "c.png")

	converter := &contract.MockRasterConverter{}
	converter.On("Convert", mock.Anything, svg, png, mock.Anything).Return(contract.ConvertOutput{}, nil)
	factory := func(c *contract.Config) contract.RasterConverter {
		assert.Equal(t, schema.ImageMagickRaster, c.Raster)
		return converter
	}

	res := callTool(t, cfg, factory, "render_chart", map[string]any{
		"svg_file": svg,
		"png_file": png,
		"raster":   "imagemagick",
	})
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), `"raster_path": "`+png+`"`)
	converter.AssertExpectations(t)
}

func TestRenderChartTool_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"bad size", map[string]any{"size": "big"}, "invalid picture size"},
		{"bad style", map[string]any{"style": "pie"}, "invalid style 'pie'"},
		{"bad raster", map[string]any{"raster": "gimp"}, "raster backend 'gimp'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, baseConfig(t.TempDir()), nil, "render_chart", tt.args)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(res), tt.want)
		})
	}
}
