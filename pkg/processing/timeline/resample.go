package timeline

import (
	"errors"
	"slices"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
)

// ErrTooFewSamples signals an entity that cannot be interpolated.
// Such entities are excluded from the frames, the run continues.
var ErrTooFewSamples = errors.New("too few samples to interpolate")

// ChannelSet holds one value per tick for every channel of one entity.
// Discrete channels (gear, drs, lap, tyre) stay float until the frame
// build truncates them to integer codes.
type ChannelSet struct {
	Code        string
	X           []float64
	Y           []float64
	Distance    []float64
	RelDistance []float64
	Speed       []float64
	Gear        []float64
	DRS         []float64
	Throttle    []float64
	Brake       []float64
	Lap         []float64
	Tyre        []float64
}

type (
	Option func(*Synchronizer)
	// Synchronizer resamples entity series onto one shared timeline.
	Synchronizer struct {
		timeline *Timeline
		l        *log.Logger
	}
)

func WithLogger(arg *log.Logger) Option {
	return func(s *Synchronizer) {
		s.l = arg
	}
}

func NewSynchronizer(tl *Timeline, opts ...Option) *Synchronizer {
	ret := &Synchronizer{
		timeline: tl,
		l:        log.Default().Named("pipeline.timeline"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (s *Synchronizer) Timeline() *Timeline { return s.timeline }

// Resample interpolates every channel of the series onto the timeline.
// Outside the entity's own time range values clamp to the boundary
// sample. The input series is not modified.
func (s *Synchronizer) Resample(series *model.EntityTimeSeries) (*ChannelSet, error) {
	if len(series.Samples) < 2 {
		return nil, ErrTooFewSamples
	}
	samples := series.Samples
	// assembled series arrive sorted, guard against callers handing in
	// raw data
	if !slices.IsSortedFunc(samples, cmpSessionTime) {
		s.l.Warn("unsorted series, sorting defensively",
			log.String("entity", series.Code))
		samples = slices.Clone(samples)
		slices.SortStableFunc(samples, cmpSessionTime)
	}

	ticks := s.timeline.Ticks()
	xs := lo.Map(samples, func(item model.TelemetrySample, _ int) float64 {
		return item.SessionTime
	})
	channel := func(get func(*model.TelemetrySample) float64) []float64 {
		ys := make([]float64, len(samples))
		for i := range samples {
			ys[i] = get(&samples[i])
		}
		return Interp(ticks, xs, ys)
	}
	return &ChannelSet{
		Code:        series.Code,
		X:           channel(func(t *model.TelemetrySample) float64 { return t.X }),
		Y:           channel(func(t *model.TelemetrySample) float64 { return t.Y }),
		Distance:    channel(func(t *model.TelemetrySample) float64 { return t.Distance }),
		RelDistance: channel(func(t *model.TelemetrySample) float64 { return t.RelDistance }),
		Speed:       channel(func(t *model.TelemetrySample) float64 { return t.Speed }),
		Gear:        channel(func(t *model.TelemetrySample) float64 { return float64(t.Gear) }),
		DRS:         channel(func(t *model.TelemetrySample) float64 { return float64(t.DRS) }),
		Throttle:    channel(func(t *model.TelemetrySample) float64 { return t.Throttle }),
		Brake:       channel(func(t *model.TelemetrySample) float64 { return t.Brake }),
		Lap:         channel(func(t *model.TelemetrySample) float64 { return float64(t.Lap) }),
		Tyre:        channel(func(t *model.TelemetrySample) float64 { return float64(t.Tyre) }),
	}, nil
}

func cmpSessionTime(a, b model.TelemetrySample) int {
	switch {
	case a.SessionTime < b.SessionTime:
		return -1
	case a.SessionTime > b.SessionTime:
		return 1
	default:
		return 0
	}
}

// Interp linearly interpolates ys (sampled at ascending xs) onto the
// ascending ticks. Ticks outside [xs[0], xs[last]] clamp to the
// boundary value.
func Interp(ticks, xs, ys []float64) []float64 {
	ret := make([]float64, len(ticks))
	last := len(xs) - 1
	j := 0
	for i, t := range ticks {
		switch {
		case t <= xs[0]:
			ret[i] = ys[0]
		case t >= xs[last]:
			ret[i] = ys[last]
		default:
			for j < last-1 && xs[j+1] <= t {
				j++
			}
			x0, x1 := xs[j], xs[j+1]
			if x1 == x0 {
				ret[i] = ys[j]
				continue
			}
			frac := (t - x0) / (x1 - x0)
			ret[i] = ys[j] + frac*(ys[j+1]-ys[j])
		}
	}
	return ret
}
