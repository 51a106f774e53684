package chart

import (
	"errors"
	"math"
	"slices"
)

var (
	// ErrEmptySeries is returned when there is nothing to plot.
	ErrEmptySeries = errors.New("cannot render an empty series")

	// ErrDegenerateDomain is returned when the value axis would have zero width.
	ErrDegenerateDomain = errors.New("value domain has zero width")
)

// BandScale maps an ordered set of labels onto evenly spaced bands of a pixel range.
type BandScale struct {
	domain       []string
	index        map[string]int
	r0, r1       float64
	paddingInner float64
	paddingOuter float64
	align        float64
	step         float64
	bandwidth    float64
	start        float64
}

// NewBandScale builds a band scale over [r0, r1] with the given inner and outer padding.
// Bands are centered in the range.
func NewBandScale(domain []string, r0, r1, paddingInner, paddingOuter float64) BandScale {
	s := BandScale{
		domain:       slices.Clone(domain),
		index:        make(map[string]int, len(domain)),
		r0:           r0,
		r1:           r1,
		paddingInner: math.Min(1, math.Max(0, paddingInner)),
		paddingOuter: math.Max(0, paddingOuter),
		align:        0.5,
	}
	for i, label := range s.domain {
		if _, ok := s.index[label]; !ok {
			s.index[label] = i
		}
	}

	n := float64(len(s.domain))
	span := r1 - r0
	s.step = span / math.Max(1, n-s.paddingInner+2*s.paddingOuter)
	s.start = r0 + (span-s.step*(n-s.paddingInner))*s.align
	s.bandwidth = s.step * (1 - s.paddingInner)
	return s
}

// Domain returns the labels of the scale in order.
func (s BandScale) Domain() []string { return slices.Clone(s.domain) }

// Range returns the pixel range of the scale.
func (s BandScale) Range() (float64, float64) { return s.r0, s.r1 }

// Step returns the distance between the starts of adjacent bands.
func (s BandScale) Step() float64 { return s.step }

// Bandwidth returns the width of a single band.
func (s BandScale) Bandwidth() float64 { return s.bandwidth }

// PositionAt returns the start of the i-th band.
func (s BandScale) PositionAt(i int) float64 {
	return s.start + s.step*float64(i)
}

// CenterAt returns the middle of the i-th band.
func (s BandScale) CenterAt(i int) float64 {
	return s.PositionAt(i) + s.bandwidth/2
}

// Position returns the start of the band for label.
func (s BandScale) Position(label string) (float64, bool) {
	i, ok := s.index[label]
	if !ok {
		return 0, false
	}
	return s.PositionAt(i), true
}

// Center returns the middle of the band for label.
func (s BandScale) Center(label string) (float64, bool) {
	i, ok := s.index[label]
	if !ok {
		return 0, false
	}
	return s.CenterAt(i), true
}

// LinearScale maps a numeric domain onto a pixel range.
// The range may be inverted, e.g. [height, 0] for a y-axis.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale builds a scale whose domain spans the values widened by pad on both ends.
// A domain of zero width gives ErrDegenerateDomain.
func NewLinearScale(values []float64, pad, r0, r1 float64) (LinearScale, error) {
	if len(values) == 0 {
		return LinearScale{}, ErrEmptySeries
	}
	lo, hi := slices.Min(values), slices.Max(values)
	d0, d1 := lo-pad, hi+pad
	if !(d1 > d0) || math.IsInf(d1-d0, 0) || math.IsNaN(d1-d0) {
		return LinearScale{}, ErrDegenerateDomain
	}
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}, nil
}

// Domain returns the numeric bounds of the scale.
func (s LinearScale) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the pixel range of the scale.
func (s LinearScale) Range() (float64, float64) { return s.r0, s.r1 }

// Scale maps v from the domain onto the range.
func (s LinearScale) Scale(v float64) float64 {
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Ticks returns the multiples of step inside the domain, bounded by the domain ends.
func (s LinearScale) Ticks(step float64) []float64 {
	ticks := []float64{s.d0}
	if step > 0 && (s.d1-s.d0)/step <= maxTicks {
		for k := math.Floor(s.d0/step) + 1; k*step < s.d1; k++ {
			ticks = append(ticks, k*step)
		}
	}
	return append(ticks, s.d1)
}

// maxTicks caps the number of intermediate ticks so a tiny step cannot flood the axis.
const maxTicks = 200
