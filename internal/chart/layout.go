package chart

import (
	"fmt"

	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/schema"
)

// Margin is the space between the picture edges and the plot area, in pixels.
type Margin struct {
	Top, Right, Bottom, Left int
}

// Options controls the geometry and decoration of a rendered chart.
type Options struct {
	Title        string
	Width        int
	Height       int
	Margin       Margin
	LabelRoom    int     // Room reserved below the axis for the rotated date labels
	InnerPadding float64 // Band scale padding between bands, as a fraction of the step
	OuterPadding float64 // Band scale padding before the first and after the last band
	Pad          float64 // Value padding added below the minimum and above the maximum
	GridStep     float64 // Spacing of the horizontal grid lines, 0 disables them
	Background   string  // Picture background color
}

// Default chart geometry.
const (
	defaultLabelRoom = 45
	defaultPadding   = 0.1
)

// DefaultOptions returns the standard chart geometry for a picture of the given size.
func DefaultOptions(title string, width, height int) Options {
	return Options{
		Title:        title,
		Width:        width,
		Height:       height,
		Margin:       Margin{Top: 90, Right: 40, Bottom: 50 + defaultLabelRoom, Left: 60},
		LabelRoom:    defaultLabelRoom,
		InnerPadding: defaultPadding,
		OuterPadding: defaultPadding,
		Pad:          contract.DefaultPad,
		GridStep:     contract.DefaultGridStep,
		Background:   contract.DefaultBackground,
	}
}

// OptionsFromConfig returns the chart options described by the config.
func OptionsFromConfig(cfg *contract.Config) Options {
	opts := DefaultOptions(cfg.ChartTitle, cfg.PictureWidth, cfg.PictureHeight)
	opts.Pad = cfg.Pad
	opts.GridStep = cfg.GridStep
	if cfg.Background != "" {
		opts.Background = cfg.Background
	}
	return opts
}

// PlotWidth returns the width of the plot area.
func (o Options) PlotWidth() float64 {
	return float64(o.Width - o.Margin.Left - o.Margin.Right)
}

// PlotHeight returns the height of the plot area.
func (o Options) PlotHeight() float64 {
	return float64(o.Height - o.Margin.Top - o.Margin.Bottom)
}

// PlotPoint is a series point placed in plot area coordinates.
type PlotPoint struct {
	Label string
	Value float64
	X, Y  float64
}

// Layout holds the scales of a chart and the placed points.
type Layout struct {
	X      BandScale
	Y      LinearScale
	Points []PlotPoint
}

// NewLayout computes the scales for series and places every point.
// X runs over [0, plot width], Y over [plot height, 0].
func NewLayout(series schema.Series, opts Options) (Layout, error) {
	if series.Len() == 0 {
		return Layout{}, ErrEmptySeries
	}
	w, h := opts.PlotWidth(), opts.PlotHeight()
	if w <= 0 || h <= 0 {
		return Layout{}, fmt.Errorf("picture %dx%d leaves no room for the plot area", opts.Width, opts.Height)
	}

	x := NewBandScale(series.Labels(), 0, w, opts.InnerPadding, opts.OuterPadding)
	y, err := NewLinearScale(series.Values(), opts.Pad, h, 0)
	if err != nil {
		return Layout{}, err
	}

	points := make([]PlotPoint, series.Len())
	for i, p := range series.Points {
		points[i] = PlotPoint{
			Label: p.Label,
			Value: p.Value,
			X:     x.CenterAt(i),
			Y:     y.Scale(p.Value),
		}
	}
	return Layout{X: x, Y: y, Points: points}, nil
}
