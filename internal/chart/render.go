// Package chart renders a series as a labeled line chart in SVG.
package chart

import (
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/snapseries/snapseries/schema"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	labelGap        = 6  // Distance between a marker and its value label
	labelFontSize   = 10 // Point value labels
	tickFontSize    = 10
	titleFontSize   = 18
	titleTopPadding = 30
)

// Render draws series as a chart and writes the SVG document to w.
// It returns the layout the chart was drawn with.
func Render(w io.Writer, series schema.Series, opts Options, style ChartStyle) (Layout, error) {
	layout, err := NewLayout(series, opts)
	if err != nil {
		return Layout{}, err
	}
	if style == nil {
		style = lineStyle{}
	}

	graph := newGraph(layout, opts)
	style.Apply(&graph, layout, opts)

	if err := graph.Render(gochart.SVG, w); err != nil {
		return layout, fmt.Errorf("failed to draw chart: %w", err)
	}
	return layout, nil
}

// RenderFile renders the chart into the file at path, replacing any previous content.
func RenderFile(path string, series schema.Series, opts Options, style ChartStyle) (Layout, error) {
	if series.Len() == 0 {
		return Layout{}, ErrEmptySeries
	}
	file, err := os.Create(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	layout, err := Render(file, series, opts, style)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to write chart file %s: %w", path, closeErr)
	}
	return layout, err
}

// newGraph builds the undecorated chart: title, axes, markers and value labels.
// The series sits on the secondary y-axis so its ticks are drawn on the left.
func newGraph(layout Layout, opts Options) gochart.Chart {
	background := parseColor(opts.Background)
	axisStyle := gochart.Style{
		FontColor:   textColor,
		FontSize:    tickFontSize,
		StrokeColor: axisColor,
		StrokeWidth: 1,
	}

	xTicks := make([]gochart.Tick, 0, len(layout.Points)+2)
	_, xMax := layout.X.Range()
	xTicks = append(xTicks, gochart.Tick{Value: 0})
	xValues := make([]float64, len(layout.Points))
	yValues := make([]float64, len(layout.Points))
	for i, p := range layout.Points {
		xTicks = append(xTicks, gochart.Tick{Value: p.X, Label: html.EscapeString(p.Label)})
		xValues[i] = p.X
		yValues[i] = p.Value
	}
	xTicks = append(xTicks, gochart.Tick{Value: xMax})

	tickValues := layout.Y.Ticks(opts.GridStep)
	yTicks := make([]gochart.Tick, len(tickValues))
	for i, v := range tickValues {
		yTicks[i] = gochart.Tick{Value: v, Label: formatValue(v)}
	}
	yMin, yMax := layout.Y.Domain()

	return gochart.Chart{
		Title:      html.EscapeString(opts.Title),
		TitleStyle: gochart.Style{FontColor: textColor, FontSize: titleFontSize, Padding: gochart.Box{Top: titleTopPadding}},
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{
			FillColor: background,
			Padding: gochart.Box{
				Top:    opts.Margin.Top,
				Right:  opts.Margin.Right,
				Bottom: opts.Margin.Bottom,
				Left:   opts.Margin.Left,
			},
		},
		Canvas: gochart.Style{FillColor: background},
		XAxis: gochart.XAxis{
			Style:     axisStyle,
			TickStyle: gochart.Style{TextRotationDegrees: 90},
			Range:     &gochart.ContinuousRange{Min: 0, Max: xMax},
			Ticks:     xTicks,
		},
		// The primary axis is hidden; it mirrors the secondary so range checks pass.
		YAxis: gochart.YAxis{
			Style: gochart.Hidden(),
			Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: yTicks,
		},
		YAxisSecondary: gochart.YAxis{
			Style: axisStyle,
			Zero:  gochart.GridLine{Style: gochart.Hidden()},
			Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: yTicks,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:  opts.Title,
				YAxis: gochart.YAxisSecondary,
				Style: gochart.Style{
					StrokeColor: seriesColor,
					StrokeWidth: seriesStrokeWidth,
					DotColor:    seriesColor,
					DotWidth:    markerRadius,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
		Elements: []gochart.Renderable{valueLabels(layout, opts)},
	}
}

// valueLabels draws each point value above its marker.
// Points are placed proportionally because the drawn canvas may be smaller than the
// plot area once the axes have been measured.
func valueLabels(layout Layout, opts Options) gochart.Renderable {
	w, h := opts.PlotWidth(), opts.PlotHeight()
	return func(r gochart.Renderer, canvas gochart.Box, defaults gochart.Style) {
		style := gochart.Style{FontColor: textColor, FontSize: labelFontSize}.InheritFrom(defaults)
		for _, p := range layout.Points {
			x := canvas.Left + int(math.Round(p.X/w*float64(canvas.Width())))
			y := canvas.Bottom - int(math.Round((h-p.Y)/h*float64(canvas.Height())))
			text := formatValue(p.Value)
			tb := gochart.Draw.MeasureText(r, text, style)
			gochart.Draw.Text(r, text, x-tb.Width()/2, y-int(markerRadius)-labelGap, style)
		}
	}
}

// formatValue renders a number without trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
