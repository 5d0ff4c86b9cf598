package utils

import "testing"

func TestFormatLaptime(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "typical lap", seconds: 92.345, want: "01:32.345"},
		{name: "under a minute", seconds: 59.999, want: "00:59.999"},
		{name: "exact minute", seconds: 60, want: "01:00.000"},
		{name: "long lap", seconds: 754.5, want: "12:34.500"},
		{name: "zero", seconds: 0, want: "00:00.000"},
		{name: "negative means no time", seconds: -1, want: "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLaptime(tt.seconds); got != tt.want {
				t.Errorf("FormatLaptime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatSpeed(t *testing.T) {
	if got := FormatSpeed(312.7); got != "312 km/h" {
		t.Errorf("FormatSpeed() = %v, want 312 km/h", got)
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(5412.5); got != "5.41 km" {
		t.Errorf("FormatDistance() = %v, want 5.41 km", got)
	}
}
