package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandScale(t *testing.T) {
	s := NewBandScale([]string{"a", "b", "c"}, 0, 620, 0.1, 0.1)

	// step = 620 / (3 - 0.1 + 0.2)
	assert.InDelta(t, 200.0, s.Step(), 1e-9)
	assert.InDelta(t, 180.0, s.Bandwidth(), 1e-9)
	assert.Equal(t, []string{"a", "b", "c"}, s.Domain())

	pos, ok := s.Position("a")
	require.True(t, ok)
	assert.InDelta(t, 20.0, pos, 1e-9)

	center, ok := s.Center("c")
	require.True(t, ok)
	assert.InDelta(t, 510.0, center, 1e-9)

	_, ok = s.Center("missing")
	assert.False(t, ok)

	// Bands are symmetric around the middle of the range.
	assert.InDelta(t, 620-s.CenterAt(2), s.CenterAt(0), 1e-9)
}

func TestBandScale_SingleBandIsCentered(t *testing.T) {
	s := NewBandScale([]string{"only"}, 0, 1000, 0.1, 0.1)

	assert.InDelta(t, 500.0, s.CenterAt(0), 1e-9)
	assert.Less(t, s.Bandwidth(), 1000.0)
}

func TestBandScale_NoPadding(t *testing.T) {
	s := NewBandScale([]string{"a", "b"}, 0, 100, 0, 0)

	assert.InDelta(t, 50.0, s.Step(), 1e-9)
	assert.InDelta(t, 50.0, s.Bandwidth(), 1e-9)
	assert.InDelta(t, 25.0, s.CenterAt(0), 1e-9)
	assert.InDelta(t, 75.0, s.CenterAt(1), 1e-9)
}

func TestNewLinearScale(t *testing.T) {
	tests := []struct {
		name        string
		values      []float64
		pad         float64
		wantMin     float64
		wantMax     float64
		expectedErr error
	}{
		{name: "single point", values: []float64{42}, pad: 10, wantMin: 32, wantMax: 52},
		{name: "spread", values: []float64{5, 7, 3}, pad: 10, wantMin: -7, wantMax: 17},
		{name: "no pad", values: []float64{1, 4}, pad: 0, wantMin: 1, wantMax: 4},
		{name: "single point without pad", values: []float64{3}, pad: 0, expectedErr: ErrDegenerateDomain},
		{name: "empty", values: nil, pad: 10, expectedErr: ErrEmptySeries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewLinearScale(tt.values, tt.pad, 400, 0)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			lo, hi := s.Domain()
			assert.Equal(t, tt.wantMin, lo)
			assert.Equal(t, tt.wantMax, hi)
		})
	}
}

func TestLinearScale_ScaleIsInverted(t *testing.T) {
	s, err := NewLinearScale([]float64{42}, 10, 400, 0)
	require.NoError(t, err)

	assert.InDelta(t, 400.0, s.Scale(32), 1e-9)
	assert.InDelta(t, 0.0, s.Scale(52), 1e-9)
	assert.InDelta(t, 200.0, s.Scale(42), 1e-9)
	assert.Greater(t, s.Scale(35), s.Scale(45), "larger values sit higher on the picture")
}

func TestLinearScale_Ticks(t *testing.T) {
	s, err := NewLinearScale([]float64{42}, 10, 400, 0)
	require.NoError(t, err)

	assert.Equal(t, []float64{32, 40, 50, 52}, s.Ticks(10))
	assert.Equal(t, []float64{32, 52}, s.Ticks(0))
	assert.Equal(t, []float64{32, 52}, s.Ticks(0.0001), "too many ticks collapse to the bounds")

	aligned, err := NewLinearScale([]float64{30, 50}, 0, 400, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 40, 50}, aligned.Ticks(10))
}
