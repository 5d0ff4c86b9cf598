package quali

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
)

// Summarize reduces the timed laps of a qualifying session to per
// entity best times. Entities are ordered by overall best, entities
// without a valid lap sort last, ties break by entity code.
func Summarize(laps []provider.RawQualiLap) *model.QualiResult {
	byCode := lo.GroupBy(laps, func(l provider.RawQualiLap) string { return l.Code })
	entries := make([]model.QualiEntry, 0, len(byCode))
	for code, entityLaps := range byCode {
		entry := model.QualiEntry{
			Code: code,
			Q1:   bestOf(entityLaps, "Q1"),
			Q2:   bestOf(entityLaps, "Q2"),
			Q3:   bestOf(entityLaps, "Q3"),
		}
		entry.Best = overallBest(&entry)
		entries = append(entries, entry)
	}
	slices.SortStableFunc(entries, cmpByBest)
	for i := range entries {
		entries[i].Position = i + 1
	}
	return &model.QualiResult{Entries: entries}
}

func bestOf(laps []provider.RawQualiLap, segment string) *float64 {
	valid := lo.Filter(laps, func(l provider.RawQualiLap, _ int) bool {
		return l.Segment == segment && l.LapTime > 0
	})
	if len(valid) == 0 {
		return nil
	}
	best := lo.MinBy(valid, func(a, b provider.RawQualiLap) bool {
		return a.LapTime < b.LapTime
	})
	return &best.LapTime
}

func overallBest(entry *model.QualiEntry) *float64 {
	var best *float64
	for _, t := range []*float64{entry.Q1, entry.Q2, entry.Q3} {
		if t == nil {
			continue
		}
		if best == nil || *t < *best {
			best = t
		}
	}
	return best
}

func cmpByBest(a, b model.QualiEntry) int {
	switch {
	case a.Best == nil && b.Best == nil:
		return strings.Compare(a.Code, b.Code)
	case a.Best == nil:
		return 1
	case b.Best == nil:
		return -1
	case *a.Best < *b.Best:
		return -1
	case *a.Best > *b.Best:
		return 1
	default:
		return strings.Compare(a.Code, b.Code)
	}
}
