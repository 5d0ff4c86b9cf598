package track

// display rotations (degrees) for circuits whose canonical map
// orientation differs from the recorded world coordinates
//
//nolint:gochecknoglobals // lookup table
var circuitRotations = map[string]float64{
	"Monaco":            90,
	"Silverstone":       0,
	"Spa-Francorchamps": 45,
	"Monza":             0,
	"Suzuka":            30,
}

// CircuitRotation returns the display rotation for a location,
// unknown locations rotate by 0.
func CircuitRotation(location string) float64 {
	if deg, ok := circuitRotations[location]; ok {
		return deg
	}
	return 0
}
