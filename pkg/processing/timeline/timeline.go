package timeline

import "math"

// Timeline is the uniform global clock shared by all entities.
// Tick i lies at Start + i*Step with Step spaced at exactly 1/fps.
type Timeline struct {
	Start float64
	Step  float64
	ticks []float64
}

// New builds the timeline covering [tMin,tMax]. The length is
// floor((tMax-tMin)*fps)+1, a degenerate range yields one tick.
func New(tMin, tMax float64, fps int) *Timeline {
	step := 1.0 / float64(fps)
	n := 1
	if tMax > tMin {
		n = int(math.Floor((tMax-tMin)*float64(fps))) + 1
	}
	ticks := make([]float64, n)
	for i := range ticks {
		ticks[i] = tMin + float64(i)*step
	}
	return &Timeline{Start: tMin, Step: step, ticks: ticks}
}

func (t *Timeline) Len() int { return len(t.ticks) }

func (t *Timeline) At(i int) float64 { return t.ticks[i] }

// Ticks returns the materialized tick times. Callers must not modify
// the returned slice.
func (t *Timeline) Ticks() []float64 { return t.ticks }

func (t *Timeline) End() float64 { return t.ticks[len(t.ticks)-1] }
