package model

import "time"

const (
	FormatConventional = "conventional"
	FormatSprint       = "sprint"
)

// ScheduleEntry describes one round of a season.
type ScheduleEntry struct {
	Round    int       `json:"round"`
	Name     string    `json:"name"`
	Country  string    `json:"country"`
	Location string    `json:"location"`
	Date     time.Time `json:"date"`
	Format   string    `json:"format"`
}
