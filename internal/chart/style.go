package chart

import (
	"fmt"
	"regexp"

	"github.com/snapseries/snapseries/schema"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette used by every style; it reads well on the dark raster background.
var (
	textColor   = drawing.ColorFromHex("dddddd")
	axisColor   = drawing.ColorFromHex("888888")
	gridColor   = drawing.ColorFromHex("333333")
	seriesColor = drawing.ColorFromHex("4e9af1")
)

const (
	seriesStrokeWidth = 2.0
	markerRadius      = 4.0
	gridStrokeWidth   = 1.0
)

// ChartStyle decorates a prepared chart before it is drawn.
type ChartStyle interface {
	// Name returns the style identifier.
	Name() schema.ChartStyleName

	// Apply adjusts graph for the given layout.
	Apply(graph *gochart.Chart, layout Layout, opts Options)
}

// NewStyle returns the style registered under name.
func NewStyle(name schema.ChartStyleName) (ChartStyle, error) {
	switch name {
	case schema.LineStyle, "":
		return lineStyle{}, nil
	case schema.GridStyle:
		return gridStyle{}, nil
	default:
		return nil, fmt.Errorf("unknown chart style: %s", name)
	}
}

// lineStyle draws connected circle markers without a background grid.
type lineStyle struct{}

func (lineStyle) Name() schema.ChartStyleName { return schema.LineStyle }

func (lineStyle) Apply(graph *gochart.Chart, _ Layout, _ Options) {
	hidden := gochart.Hidden()
	graph.XAxis.GridMajorStyle, graph.XAxis.GridMinorStyle = hidden, hidden
	graph.YAxisSecondary.GridMajorStyle, graph.YAxisSecondary.GridMinorStyle = hidden, hidden
}

// gridStyle draws the line style over a background grid: one vertical line per band and
// one horizontal line per grid step.
type gridStyle struct{}

func (gridStyle) Name() schema.ChartStyleName { return schema.GridStyle }

func (gridStyle) Apply(graph *gochart.Chart, layout Layout, opts Options) {
	lineStyle{}.Apply(graph, layout, opts)

	major := gochart.Style{StrokeColor: gridColor, StrokeWidth: gridStrokeWidth}

	vertical := make([]gochart.GridLine, 0, len(layout.Points))
	for _, p := range layout.Points {
		vertical = append(vertical, gochart.GridLine{Value: p.X})
	}
	graph.XAxis.GridMajorStyle = major
	graph.XAxis.GridLines = vertical

	if opts.GridStep <= 0 {
		return
	}
	ticks := layout.Y.Ticks(opts.GridStep)
	horizontal := make([]gochart.GridLine, 0, len(ticks))
	for _, v := range ticks[1 : len(ticks)-1] {
		horizontal = append(horizontal, gochart.GridLine{Value: v})
	}
	if len(horizontal) > 0 {
		graph.YAxisSecondary.GridMajorStyle = major
		graph.YAxisSecondary.GridLines = horizontal
	}
}

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// parseColor accepts a css hex code or a basic color name.
func parseColor(s string) drawing.Color {
	if hexColor.MatchString(s) {
		return drawing.ColorFromHex(s)
	}
	return drawing.ColorFromKnown(s)
}
