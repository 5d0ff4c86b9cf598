package model

// TelemetrySample is one timestamped reading for one entity.
// Values keep the provider conventions: speed in km/h, throttle and
// brake in percent, DRS as raw status code. Immutable once assembled.
type TelemetrySample struct {
	SessionTime float64 `json:"sessionTime"`
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

// EntityTimeSeries spans the whole session for one entity.
// Samples are ordered by session time, Distance is cumulative over
// all laps (lap local distance plus the sum of prior lap lengths).
type EntityTimeSeries struct {
	Code    string            `json:"code"`
	Samples []TelemetrySample `json:"samples"`
	MaxLap  int               `json:"maxLap"`
}

// StartTime returns the session time of the first sample.
func (s *EntityTimeSeries) StartTime() float64 {
	if len(s.Samples) == 0 {
		return 0
	}
	return s.Samples[0].SessionTime
}

// EndTime returns the session time of the last sample.
func (s *EntityTimeSeries) EndTime() float64 {
	if len(s.Samples) == 0 {
		return 0
	}
	return s.Samples[len(s.Samples)-1].SessionTime
}
