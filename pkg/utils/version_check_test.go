package utils

import "testing"

func TestCheckExporterVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    bool
	}{
		{name: "minimum", version: "1.0.0", want: true},
		{name: "minimum with prefix", version: "v1.0.0", want: true},
		{name: "newer patch", version: "1.0.1", want: true},
		{name: "newer minor", version: "1.2.0", want: true},
		{name: "newer major", version: "2.0.0", want: true},
		{name: "too old", version: "0.9.3", want: false},
		{name: "prerelease of minimum", version: "1.0.0-rc1", want: false},
		{name: "garbage", version: "latest", want: false},
		{name: "empty", version: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckExporterVersion(tt.version); got != tt.want {
				t.Errorf("CheckExporterVersion(%s) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}
