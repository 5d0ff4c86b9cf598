package model

type EventKind string

const (
	EventEntityDropout    EventKind = "entityDropout"
	EventYellowFlag       EventKind = "yellowFlag"
	EventSafetyCar        EventKind = "safetyCar"
	EventRedFlag          EventKind = "redFlag"
	EventVirtualSafetyCar EventKind = "virtualSafetyCar"
)

// RaceEvent is a discrete marker on the frame timeline. The event list
// carries no ordering guarantee, consumers sort by frame if needed.
type RaceEvent struct {
	Kind  EventKind `json:"kind"`
	Frame int       `json:"frame"`
	Label string    `json:"label"`
}
