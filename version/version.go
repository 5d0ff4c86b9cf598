package version

import "fmt"

// these values are set at build time via ldflags
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var FullVersion = func() string {
	return fmt.Sprintf("%s (%s) built %s", Version, GitCommit, BuildDate)
}()
