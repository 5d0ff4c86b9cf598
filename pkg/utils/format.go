package utils

import "fmt"

// FormatLaptime renders seconds as MM:SS.mmm, negative values as N/A.
func FormatLaptime(seconds float64) string {
	if seconds < 0 {
		return "N/A"
	}
	minutes := int(seconds) / 60
	secs := seconds - float64(minutes*60)
	return fmt.Sprintf("%02d:%06.3f", minutes, secs)
}

func FormatSpeed(speedKmh float64) string {
	return fmt.Sprintf("%d km/h", int(speedKmh))
}

func FormatDistance(distanceM float64) string {
	return fmt.Sprintf("%.2f km", distanceM/1000)
}
