package model

// WeatherSample is one row of the session weather table.
// WindDirection is optional, not every provider delivers it.
type WeatherSample struct {
	SessionTime   float64  `json:"sessionTime"`
	Rainfall      float64  `json:"rainfall"`
	TrackTemp     float64  `json:"trackTemp"`
	AirTemp       float64  `json:"airTemp"`
	Humidity      float64  `json:"humidity"`
	Pressure      float64  `json:"pressure"`
	WindSpeed     float64  `json:"windSpeed"`
	WindDirection *float64 `json:"windDirection,omitempty"`
}

// StatusRecord is one row of the session track status table.
type StatusRecord struct {
	StartTime float64 `json:"startTime"`
	Code      string  `json:"code"`
	Message   string  `json:"message"`
}
