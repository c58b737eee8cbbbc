package aero

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cq = 0.01*tsr + 0.001*pitch is reproduced exactly by bilinear interpolation.
func planeSurface(t *testing.T) *Surface {
	t.Helper()
	pitch := []float64{0, 5, 10}
	tsr := []float64{2, 4, 6, 8}
	cq := make([][]float64, len(tsr))
	for i, l := range tsr {
		cq[i] = make([]float64, len(pitch))
		for j, b := range pitch {
			cq[i][j] = 0.01*l + 0.001*b
		}
	}
	s, err := NewSurface(pitch, tsr, cq)
	require.NoError(t, err)
	return s
}

func TestSurfaceInterpolatesPlane(t *testing.T) {
	s := planeSurface(t)

	tests := []struct {
		pitch, tsr float64
	}{
		{0, 2},
		{5, 4},
		{2.5, 3},
		{7.3, 5.1},
		{10, 8},
	}
	for _, tt := range tests {
		want := 0.01*tt.tsr + 0.001*tt.pitch
		assert.InDelta(t, want, s.Cq(tt.pitch, tt.tsr), 1e-12, "pitch=%g tsr=%g", tt.pitch, tt.tsr)
	}
}

func TestSurfaceClampsOutsideGrid(t *testing.T) {
	s := planeSurface(t)

	assert.InDelta(t, s.Cq(0, 2), s.Cq(-5, 0.5), 1e-12, "low corner")
	assert.InDelta(t, s.Cq(10, 8), s.Cq(40, 20), 1e-12, "high corner")
	assert.InDelta(t, s.Cq(5, 8), s.Cq(5, 1e6), 1e-12, "tsr above grid")
	assert.InDelta(t, s.Cq(0, 5), s.Cq(-90, 5), 1e-12, "pitch below grid")

	for _, v := range []float64{s.Cq(-1e9, -1e9), s.Cq(1e9, 1e9)} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestSurfaceRanges(t *testing.T) {
	s := planeSurface(t)
	lo, hi := s.PitchRange()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)
	lo, hi = s.TSRRange()
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 8.0, hi)
}

func TestSurfacePowerThrust(t *testing.T) {
	s := planeSurface(t)
	assert.False(t, s.HasPowerThrust())
	assert.True(t, math.IsNaN(s.Cp(0, 2)))

	cp := [][]float64{{0.1, 0.2, 0.3}, {0.1, 0.2, 0.3}, {0.1, 0.2, 0.3}, {0.1, 0.2, 0.3}}
	ct := [][]float64{{0.5, 0.5, 0.5}, {0.6, 0.6, 0.6}, {0.7, 0.7, 0.7}, {0.8, 0.8, 0.8}}
	require.NoError(t, s.WithPowerThrust(cp, ct))
	assert.True(t, s.HasPowerThrust())
	assert.InDelta(t, 0.25, s.Cp(7.5, 3), 1e-12)
	assert.InDelta(t, 0.65, s.Ct(0, 5), 1e-12)
}

func TestNewSurfaceRejectsMalformedGrid(t *testing.T) {
	tests := []struct {
		name  string
		pitch []float64
		tsr   []float64
		cq    [][]float64
	}{
		{"single pitch", []float64{0}, []float64{1, 2}, [][]float64{{0}, {0}}},
		{"unsorted tsr", []float64{0, 1}, []float64{2, 1}, [][]float64{{0, 0}, {0, 0}}},
		{"duplicate pitch", []float64{1, 1}, []float64{1, 2}, [][]float64{{0, 0}, {0, 0}}},
		{"row count", []float64{0, 1}, []float64{1, 2}, [][]float64{{0, 0}}},
		{"column count", []float64{0, 1}, []float64{1, 2}, [][]float64{{0, 0}, {0}}},
		{"nan axis", []float64{0, math.NaN()}, []float64{1, 2}, [][]float64{{0, 0}, {0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSurface(tt.pitch, tt.tsr, tt.cq)
			assert.ErrorIs(t, err, ErrMalformedGrid)
		})
	}
}
