package model

// EntityFrameState holds the interpolated values of one entity at one
// tick. Discrete channels (lap, tyre, gear, drs) are truncated to their
// integer codes at frame build time.
type EntityFrameState struct {
	Position    int     `json:"position"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Distance    float64 `json:"distance"`
	RelDistance float64 `json:"relDistance"`
	Speed       float64 `json:"speed"`
	Gear        int     `json:"gear"`
	DRS         int     `json:"drs"`
	Throttle    float64 `json:"throttle"`
	Brake       float64 `json:"brake"`
	Lap         int     `json:"lap"`
	Tyre        int     `json:"tyre"`
}

// FrameWeather is the weather snapshot attached to a frame.
type FrameWeather struct {
	AirTemp       float64  `json:"airTemp"`
	TrackTemp     float64  `json:"trackTemp"`
	Humidity      float64  `json:"humidity"`
	Pressure      float64  `json:"pressure"`
	Rainfall      float64  `json:"rainfall"`
	WindSpeed     float64  `json:"windSpeed"`
	WindDirection *float64 `json:"windDirection,omitempty"`
}

// Frame is one tick of the global timeline.
type Frame struct {
	Time     float64                     `json:"time"`
	Entities map[string]EntityFrameState `json:"entities"`
	Weather  *FrameWeather               `json:"weather,omitempty"`
}
