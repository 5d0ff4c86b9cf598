package assembler

import (
	"errors"
	"slices"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
)

// ErrNoSamples signals an entity without usable telemetry. This is a
// per entity condition, not a pipeline failure.
var ErrNoSamples = errors.New("no usable samples")

type (
	Option func(*Assembler)
	// Assembler concatenates the lap fragments of one entity into a
	// continuous time ordered series with cumulative race distance.
	Assembler struct {
		l *log.Logger
	}
)

func WithLogger(arg *log.Logger) Option {
	return func(a *Assembler) {
		a.l = arg
	}
}

func New(opts ...Option) *Assembler {
	ret := &Assembler{
		l: log.Default().Named("pipeline.assembler"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Assemble builds the EntityTimeSeries for one entity. Empty fragments
// are skipped. Each fragment's lap local distance is offset by the sum
// of the final distances of all previously processed laps, which keeps
// the series distance monotonic across laps.
func (a *Assembler) Assemble(entity *provider.RawEntity) (*model.EntityTimeSeries, error) {
	capacity := lo.SumBy(entity.Fragments,
		func(f provider.RawFragment) int { return len(f.Samples) })
	samples := make([]model.TelemetrySample, 0, capacity)

	distOffset := 0.0
	maxLap := 0
	for i := range entity.Fragments {
		frag := &entity.Fragments[i]
		if len(frag.Samples) == 0 {
			a.l.Debug("skipping empty fragment",
				log.String("entity", entity.Code),
				log.Int("lap", frag.Lap))
			continue
		}
		tyre := model.CompoundCode(frag.Compound)
		for j := range frag.Samples {
			raw := &frag.Samples[j]
			samples = append(samples, model.TelemetrySample{
				SessionTime: raw.SessionTime,
				X:           raw.X,
				Y:           raw.Y,
				Distance:    raw.Distance + distOffset,
				RelDistance: raw.RelDistance,
				Speed:       raw.Speed,
				Gear:        raw.Gear,
				DRS:         raw.DRS,
				Throttle:    raw.Throttle,
				Brake:       raw.Brake,
				Lap:         frag.Lap,
				Tyre:        tyre,
			})
		}
		distOffset += frag.Samples[len(frag.Samples)-1].Distance
		if frag.Lap > maxLap {
			maxLap = frag.Lap
		}
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	// fragments arrive pre-ordered but ordering inside a fragment is
	// not guaranteed
	slices.SortStableFunc(samples, func(a, b model.TelemetrySample) int {
		switch {
		case a.SessionTime < b.SessionTime:
			return -1
		case a.SessionTime > b.SessionTime:
			return 1
		default:
			return 0
		}
	})
	return &model.EntityTimeSeries{
		Code:    entity.Code,
		Samples: samples,
		MaxLap:  maxLap,
	}, nil
}
