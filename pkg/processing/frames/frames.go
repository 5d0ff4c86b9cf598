package frames

import (
	"math"
	"slices"
	"sort"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/processing/timeline"
)

type (
	Option func(*FrameAssembler)
	// FrameAssembler turns resampled channels into the frame sequence.
	FrameAssembler struct {
		timeline *timeline.Timeline
		l        *log.Logger
	}
)

func WithLogger(arg *log.Logger) Option {
	return func(f *FrameAssembler) {
		f.l = arg
	}
}

func New(tl *timeline.Timeline, opts ...Option) *FrameAssembler {
	ret := &FrameAssembler{
		timeline: tl,
		l:        log.Default().Named("pipeline.frames"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

type rankEntry struct {
	code string
	dist float64
}

// Build emits one frame per tick. Entities are ranked by descending
// cumulative distance, rank ties break by entity code since entities
// enter the sort in code order and the sort is stable. Discrete
// channels are truncated to ints here, relative distance is rounded
// to 4 decimals. Weather is attached when available, else nil.
func (f *FrameAssembler) Build(
	channels map[string]*timeline.ChannelSet,
	weather []model.WeatherSample,
) []model.Frame {
	codes := lo.Keys(channels)
	sort.Strings(codes)
	wx := f.resampleWeather(weather)

	frames := make([]model.Frame, f.timeline.Len())
	for i := range frames {
		entries := make([]rankEntry, 0, len(codes))
		for _, code := range codes {
			entries = append(entries, rankEntry{code: code, dist: channels[code].Distance[i]})
		}
		slices.SortStableFunc(entries, func(a, b rankEntry) int {
			switch {
			case a.dist > b.dist:
				return -1
			case a.dist < b.dist:
				return 1
			default:
				return 0
			}
		})
		states := make(map[string]model.EntityFrameState, len(entries))
		for rank, e := range entries {
			cs := channels[e.code]
			states[e.code] = model.EntityFrameState{
				Position:    rank + 1,
				X:           cs.X[i],
				Y:           cs.Y[i],
				Distance:    cs.Distance[i],
				RelDistance: math.Round(cs.RelDistance[i]*10000) / 10000,
				Speed:       cs.Speed[i],
				Gear:        int(cs.Gear[i]),
				DRS:         int(cs.DRS[i]),
				Throttle:    cs.Throttle[i],
				Brake:       cs.Brake[i],
				Lap:         int(cs.Lap[i]),
				Tyre:        int(cs.Tyre[i]),
			}
		}
		frames[i] = model.Frame{
			Time:     f.timeline.At(i),
			Entities: states,
			Weather:  wx.at(i),
		}
	}
	return frames
}

// weatherChannels holds the session weather resampled onto the
// timeline. windDir stays nil unless every sample carries a direction.
type weatherChannels struct {
	air       []float64
	track     []float64
	humidity  []float64
	pressure  []float64
	rainfall  []float64
	windSpeed []float64
	windDir   []float64
}

func (w *weatherChannels) at(i int) *model.FrameWeather {
	if w == nil {
		return nil
	}
	ret := &model.FrameWeather{
		AirTemp:   w.air[i],
		TrackTemp: w.track[i],
		Humidity:  w.humidity[i],
		Pressure:  w.pressure[i],
		Rainfall:  w.rainfall[i],
		WindSpeed: w.windSpeed[i],
	}
	if w.windDir != nil {
		v := w.windDir[i]
		ret.WindDirection = &v
	}
	return ret
}

func (f *FrameAssembler) resampleWeather(weather []model.WeatherSample) *weatherChannels {
	if len(weather) == 0 {
		f.l.Debug("no weather data, frames get nil weather")
		return nil
	}
	if !slices.IsSortedFunc(weather, func(a, b model.WeatherSample) int {
		switch {
		case a.SessionTime < b.SessionTime:
			return -1
		case a.SessionTime > b.SessionTime:
			return 1
		default:
			return 0
		}
	}) {
		weather = slices.Clone(weather)
		slices.SortStableFunc(weather, func(a, b model.WeatherSample) int {
			switch {
			case a.SessionTime < b.SessionTime:
				return -1
			case a.SessionTime > b.SessionTime:
				return 1
			default:
				return 0
			}
		})
	}
	ticks := f.timeline.Ticks()
	xs := lo.Map(weather, func(item model.WeatherSample, _ int) float64 {
		return item.SessionTime
	})
	channel := func(get func(*model.WeatherSample) float64) []float64 {
		ys := make([]float64, len(weather))
		for i := range weather {
			ys[i] = get(&weather[i])
		}
		return timeline.Interp(ticks, xs, ys)
	}
	ret := &weatherChannels{
		air:       channel(func(w *model.WeatherSample) float64 { return w.AirTemp }),
		track:     channel(func(w *model.WeatherSample) float64 { return w.TrackTemp }),
		humidity:  channel(func(w *model.WeatherSample) float64 { return w.Humidity }),
		pressure:  channel(func(w *model.WeatherSample) float64 { return w.Pressure }),
		rainfall:  channel(func(w *model.WeatherSample) float64 { return w.Rainfall }),
		windSpeed: channel(func(w *model.WeatherSample) float64 { return w.WindSpeed }),
	}
	if lo.EveryBy(weather, func(w model.WeatherSample) bool { return w.WindDirection != nil }) {
		ret.windDir = channel(func(w *model.WeatherSample) float64 { return *w.WindDirection })
	}
	return ret
}
