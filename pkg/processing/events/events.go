package events

import (
	"sort"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
)

// track status codes that translate to flag events, all other codes
// are ignored
//
//nolint:gochecknoglobals // lookup table
var statusKinds = map[string]model.EventKind{
	"2": model.EventYellowFlag,
	"4": model.EventSafetyCar,
	"5": model.EventRedFlag,
	"6": model.EventVirtualSafetyCar,
	"7": model.EventVirtualSafetyCar,
}

type (
	Option func(*Extractor)
	// Extractor derives discrete timeline markers from the frame
	// sequence and the session status records.
	Extractor struct {
		fps int
		l   *log.Logger
	}
)

func WithFPS(arg int) Option {
	return func(e *Extractor) {
		e.fps = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(e *Extractor) {
		e.l = arg
	}
}

const defaultFPS = 25

func New(opts ...Option) *Extractor {
	ret := &Extractor{
		fps: defaultFPS,
		l:   log.Default().Named("pipeline.events"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Extract emits dropout events by sampling the frames at a stride of
// one second of replay time and diffing the present entity sets, and
// flag events by mapping status codes onto the preceding frame index.
// The returned list carries no ordering guarantee.
func (e *Extractor) Extract(
	frames []model.Frame,
	statuses []model.StatusRecord,
) []model.RaceEvent {
	ret := []model.RaceEvent{}
	if len(frames) == 0 {
		return ret
	}

	stride := e.fps
	prev := []string{}
	for i := 0; i < len(frames); i += stride {
		current := lo.Keys(frames[i].Entities)
		if len(prev) > 0 {
			missing, _ := lo.Difference(prev, current)
			sort.Strings(missing)
			for _, code := range missing {
				e.l.Debug("entity dropped out",
					log.String("entity", code), log.Int("frame", i))
				ret = append(ret, model.RaceEvent{
					Kind:  model.EventEntityDropout,
					Frame: i,
					Label: code,
				})
			}
		}
		prev = current
	}

	for _, status := range statuses {
		kind, ok := statusKinds[status.Code]
		if !ok {
			continue
		}
		ret = append(ret, model.RaceEvent{
			Kind:  kind,
			Frame: int(status.StartTime * float64(e.fps)),
			Label: status.Message,
		})
	}
	return ret
}
