package model

import "strings"

// numeric tyre compound codes carried in samples and frames
const (
	CompoundSoft         = 0
	CompoundMedium       = 1
	CompoundHard         = 2
	CompoundIntermediate = 3
	CompoundWet          = 4
	CompoundUnknown      = -1
)

//nolint:gochecknoglobals // lookup table
var compoundCodes = map[string]int{
	"SOFT":         CompoundSoft,
	"MEDIUM":       CompoundMedium,
	"HARD":         CompoundHard,
	"INTERMEDIATE": CompoundIntermediate,
	"WET":          CompoundWet,
}

// CompoundCode maps a provider compound name to its numeric code,
// unknown names map to CompoundUnknown.
func CompoundCode(name string) int {
	if code, ok := compoundCodes[strings.ToUpper(name)]; ok {
		return code
	}
	return CompoundUnknown
}

// CompoundName is the inverse of CompoundCode.
func CompoundName(code int) string {
	for name, c := range compoundCodes {
		if c == code {
			return name
		}
	}
	return "UNKNOWN"
}
