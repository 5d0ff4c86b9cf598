package timeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeline_Length(t *testing.T) {
	tests := []struct {
		name string
		tMin float64
		tMax float64
		fps  int
		want int
	}{
		{name: "whole seconds", tMin: 0, tMax: 2, fps: 1, want: 3},
		{name: "25 fps over 10s", tMin: 0, tMax: 10, fps: 25, want: 251},
		{name: "fractional end", tMin: 0, tMax: 1.9, fps: 1, want: 2},
		{name: "offset start", tMin: 100, tMax: 102.5, fps: 2, want: 6},
		{name: "degenerate range", tMin: 5, tMax: 5, fps: 25, want: 1},
		{name: "inverted range", tMin: 5, tMax: 4, fps: 25, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := New(tt.tMin, tt.tMax, tt.fps)
			assert.Equal(t, tt.want, tl.Len())
		})
	}
}

func TestTimeline_Spacing(t *testing.T) {
	tl := New(10, 12, 25)
	assert.Equal(t, 10.0, tl.Start)
	assert.Equal(t, 1.0/25.0, tl.Step)
	for i := 1; i < tl.Len(); i++ {
		assert.InDelta(t, tl.Step, tl.At(i)-tl.At(i-1), 1e-12)
	}
	assert.InDelta(t, 12.0, tl.End(), 1e-9)
}

func TestInterp_Midpoints(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 10, 40}
	got := Interp([]float64{0, 0.5, 1, 1.5, 2}, xs, ys)
	want := []float64{0, 5, 10, 25, 40}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "tick %d", i)
	}
}

func TestInterp_ClampsOutsideRange(t *testing.T) {
	xs := []float64{5, 6}
	ys := []float64{50, 60}
	got := Interp([]float64{0, 4.9, 5, 6, 7, 100}, xs, ys)
	want := []float64{50, 50, 50, 60, 60, 60}
	assert.Equal(t, want, got)
}

func TestInterp_DuplicateSampleTimes(t *testing.T) {
	// duplicate x values must not divide by zero
	xs := []float64{0, 1, 1, 2}
	ys := []float64{0, 10, 20, 30}
	got := Interp([]float64{0.5, 1.5}, xs, ys)
	assert.False(t, math.IsNaN(got[0]))
	assert.False(t, math.IsNaN(got[1]))
	assert.InDelta(t, 5.0, got[0], 1e-9)
	assert.InDelta(t, 25.0, got[1], 1e-9)
}
