package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
)

// ScheduleSource reads season calendars from a schedule file holding
// one block per season:
//
//	{"seasons":[{"year":2024,"events":[{"round":1,...},...]},...]}
type ScheduleSource struct {
	file string
}

func NewScheduleSource(file string) *ScheduleSource {
	return &ScheduleSource{file: file}
}

type scheduleEntryDump struct {
	Round    int    `json:"round"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Format   string `json:"format"`
}

//nolint:whitespace // can't make both editor and linter happy
func (s *ScheduleSource) Events(_ context.Context, year int) (
	[]model.ScheduleEntry, error,
) {
	data, err := readFile(s.file)
	if err != nil {
		return nil, err
	}
	obj, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse schedule: %w", err)
	}
	jPath := fmt.Sprintf(`$.seasons[?(@.year == %d)].events`, year)
	path, err := jp.ParseString(jPath)
	if err != nil {
		return nil, err
	}
	res := path.Get(obj)
	if len(res) == 0 {
		return nil, fmt.Errorf("no schedule for year %d", year)
	}
	dumps := []scheduleEntryDump{}
	if err := oj.Unmarshal([]byte(oj.JSON(res[0])), &dumps); err != nil {
		return nil, fmt.Errorf("could not decode schedule: %w", err)
	}
	ret := make([]model.ScheduleEntry, 0, len(dumps))
	for _, d := range dumps {
		entry := model.ScheduleEntry{
			Round:    d.Round,
			Name:     d.Name,
			Country:  d.Country,
			Location: d.Location,
			Format:   d.Format,
		}
		if d.Format == "" {
			entry.Format = model.FormatConventional
		}
		if d.Date != "" {
			if ts, err := time.Parse("2006-01-02", d.Date); err == nil {
				entry.Date = ts
			}
		}
		ret = append(ret, entry)
	}
	return ret, nil
}

var _ provider.ScheduleSource = (*ScheduleSource)(nil)
