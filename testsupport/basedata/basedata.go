// Package basedata provides shared fixtures for tests.
package basedata

import (
	"github.com/mpapenbr/f1replay-engine-go/pkg/model"
	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
)

// SimpleFragment builds one lap fragment with count samples spaced by
// step starting at start. Positions and distance grow linearly with
// the session time which keeps interpolation results easy to predict.
func SimpleFragment(lap int, compound string, start, step float64, count int) provider.RawFragment {
	samples := make([]provider.RawSample, count)
	for i := range samples {
		t := start + float64(i)*step
		samples[i] = provider.RawSample{
			SessionTime: t,
			X:           t * 10,
			Y:           t * 5,
			Distance:    (t - start) * 50,
			RelDistance: float64(i) / float64(max(count-1, 1)),
			Speed:       200,
			Gear:        5,
			DRS:         0,
			Throttle:    80,
			Brake:       0,
		}
	}
	return provider.RawFragment{Lap: lap, Compound: compound, Samples: samples}
}

func SampleEntity(code string, fragments ...provider.RawFragment) provider.RawEntity {
	return provider.RawEntity{Code: code, Fragments: fragments}
}

// ReferenceLap builds a straight line lap along the x axis. The drs
// slice holds per sample DRS codes, nil means all inactive.
func ReferenceLap(points int, drs []int) *provider.RawFragment {
	samples := make([]provider.RawSample, points)
	for i := range samples {
		code := 0
		if drs != nil {
			code = drs[i]
		}
		samples[i] = provider.RawSample{
			SessionTime: float64(i),
			X:           float64(i) * 100,
			Y:           0,
			Distance:    float64(i) * 100,
			DRS:         code,
		}
	}
	return &provider.RawFragment{Lap: 1, Compound: "SOFT", Samples: samples}
}

// SampleSession bundles two entities with three samples each at
// t=0,1,2, weather, one safety car period and a valid reference lap.
func SampleSession() *provider.RawSession {
	windDir := 180.0
	return &provider.RawSession{
		Event: provider.EventMeta{
			Year:        2024,
			Round:       1,
			Name:        "Testland Grand Prix",
			Location:    "Testland",
			SessionType: "R",
		},
		Entities: []provider.RawEntity{
			SampleEntity("LEC", SimpleFragment(1, "SOFT", 0, 1, 3)),
			SampleEntity("VER", SimpleFragment(1, "MEDIUM", 0, 1, 3)),
		},
		Weather: []model.WeatherSample{
			{
				SessionTime: 0, AirTemp: 25, TrackTemp: 40, Humidity: 55,
				Pressure: 1013, WindSpeed: 3, WindDirection: &windDir,
			},
			{
				SessionTime: 2, AirTemp: 26, TrackTemp: 42, Humidity: 53,
				Pressure: 1012, WindSpeed: 4, WindDirection: &windDir,
			},
		},
		TrackStatus: []model.StatusRecord{
			{StartTime: 0, Code: "1", Message: "AllClear"},
			{StartTime: 1, Code: "4", Message: "SCDeployed"},
		},
		ReferenceLap: ReferenceLap(20, nil),
	}
}
