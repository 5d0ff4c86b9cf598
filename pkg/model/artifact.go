package model

import "time"

// CurrentSchemaVersion is stamped into every artifact. Artifacts with
// a different version are treated as cache miss.
const CurrentSchemaVersion = 1

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ReplayArtifact is the complete computed bundle for one session.
// This is the whole contract a renderer consumes (together with the
// separately computed TrackGeometry).
type ReplayArtifact struct {
	SchemaVersion int              `json:"schemaVersion"`
	ID            string           `json:"id"`
	Key           string           `json:"key"`
	FPS           int              `json:"fps"`
	TotalLaps     int              `json:"totalLaps"`
	EntityColors  map[string]Color `json:"entityColors"`
	Events        []RaceEvent      `json:"events"`
	Frames        []Frame          `json:"frames"`
	CreatedAt     time.Time        `json:"createdAt"`
}
