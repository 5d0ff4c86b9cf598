package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel          string  // sets the log level (zap log level values)
	LogFormat         string  // text vs json
	LogConfig         string  // path to log config file
	EnableTelemetry   bool    // enable telemetry
	TelemetryEndpoint string  // endpoint for telemetry
	ProfilingPort     int     // port for profiling
	CacheDir          string  // directory for the replay artifact cache
	ForceRefresh      bool    // recompute even if a cached artifact exists
	FPS               int     // replay frame rate
	TrackWidth        float64 // track width used for boundary synthesis
	MaxWorkers        int     // upper bound for assembly workers (0: number of CPUs)
	WorkerTimeout     string  // max duration an assembly worker may spend on one entity
	OutputFile        string  // write the computed artifact to this file (in addition to the cache)
)
