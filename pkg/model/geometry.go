package model

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

func (b BoundingBox) Width() float64  { return b.MaxX - b.MinX }
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// ZonePoint marks one end of a DRS zone with its world coordinate and
// the index of the sample in the reference lap.
type ZonePoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Index int     `json:"index"`
}

type DRSZone struct {
	Start ZonePoint `json:"start"`
	End   ZonePoint `json:"end"`
}

// TrackGeometry is built once per session from a reference lap and is
// immutable afterwards. Inner and outer run along the centerline offset
// by half the track width.
type TrackGeometry struct {
	Centerline  []Point     `json:"centerline"`
	Inner       []Point     `json:"inner"`
	Outer       []Point     `json:"outer"`
	Bounds      BoundingBox `json:"bounds"`
	DRSZones    []DRSZone   `json:"drsZones"`
	Width       float64     `json:"width"`
	RotationDeg float64     `json:"rotationDeg"`
}
