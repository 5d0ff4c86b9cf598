package util

import (
	"fmt"
	"os"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/config"
)

func ParseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// SetupLogger creates the process logger from the resolved config
// values and installs it as the default. With a log config file the
// base level opens up to debug and the filter rules decide per logger.
func SetupLogger() *log.Logger {
	level := ParseLogLevel(config.LogLevel, log.InfoLevel)
	opts := []log.Option{log.WithCaller(true), log.AddCallerSkip(1)}
	if config.LogConfig != "" {
		if cfg, err := log.LoadConfig(config.LogConfig); err == nil {
			opts = append(opts, log.WithFilters(cfg.Rules()))
			level = log.DebugLevel
		} else {
			// the logger is not up at this point
			fmt.Fprintf(os.Stderr, "Ignoring invalid log config: %v\n", err)
		}
	}
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(os.Stderr, level, opts...)
	default:
		logger = log.DevLogger(os.Stderr, level, opts...)
	}
	log.ResetDefault(logger)
	return logger
}
