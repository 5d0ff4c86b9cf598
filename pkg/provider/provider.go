package provider

import (
	"context"
	"errors"

	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnsupportedVersion = errors.New("unsupported exporter version")
)

// SessionSelector identifies one session of a season.
type SessionSelector struct {
	Year        int
	Round       int
	SessionType string
}

// RawSample is one provider reading. Distance is lap local, the
// assembler converts it to cumulative race distance.
type RawSample struct {
	SessionTime float64
	X           float64
	Y           float64
	Distance    float64
	RelDistance float64
	Speed       float64
	Gear        int
	DRS         int
	Throttle    float64
	Brake       float64
}

// RawFragment is the telemetry of one lap for one entity.
type RawFragment struct {
	Lap      int
	Compound string
	Samples  []RawSample
}

// RawEntity is the complete lap fragmented input for one entity.
// Color is optional, nil means no provider supplied display color.
type RawEntity struct {
	Code      string
	Color     *model.Color
	Fragments []RawFragment
}

type EventMeta struct {
	Year        int
	Round       int
	Name        string
	Location    string
	SessionType string
}

// RawQualiLap is one timed lap of a qualifying segment.
type RawQualiLap struct {
	Code    string
	Segment string
	LapTime float64
}

// RawSession bundles everything the pipeline consumes for one session.
// ReferenceLap supplies the path for geometry building, QualiLaps are
// only present for qualifying style sessions.
type RawSession struct {
	Event        EventMeta
	Entities     []RawEntity
	Weather      []model.WeatherSample
	TrackStatus  []model.StatusRecord
	ReferenceLap *RawFragment
	QualiLaps    []RawQualiLap
}

// SessionSource delivers recorded sessions. Implementations own all
// upstream concerns (file layout, validation, version gate).
type SessionSource interface {
	Load(ctx context.Context, sel SessionSelector) (*RawSession, error)
}

// ScheduleSource delivers the season calendar.
type ScheduleSource interface {
	Events(ctx context.Context, year int) ([]model.ScheduleEntry, error)
}
