package utils

import (
	"strings"

	"golang.org/x/mod/semver"
)

const (
	MinExporterVersion string = "v1.0.0"
)

// CheckExporterVersion reports whether a session dump was written by
// an exporter of at least the minimum supported schema version.
func CheckExporterVersion(toCheck string) bool {
	if !strings.HasPrefix(toCheck, "v") {
		toCheck = "v" + toCheck
	}
	res := semver.Compare(toCheck, MinExporterVersion)
	return res >= 0
}
