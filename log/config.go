package log

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"moul.io/zapfilter"
)

// Config describes per-logger levels read from a YAML file.
// Logger name patterns use zapfilter syntax (pipeline.*, cache, ...).
type Config struct {
	DefaultLevel string         `yaml:"defaultLevel"`
	Filters      []FilterConfig `yaml:"filters"`
}

type FilterConfig struct {
	Level   string `yaml:"level"`
	Loggers string `yaml:"loggers"`
}

// LoadConfig reads a log configuration from fileName and validates
// the resulting filter rules.
func LoadConfig(fileName string) (*Config, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not read log config: %w", err)
	}
	ret := &Config{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("could not parse log config: %w", err)
	}
	if ret.DefaultLevel == "" {
		ret.DefaultLevel = "info"
	}
	if _, err := zapfilter.ParseRules(ret.Rules()); err != nil {
		return nil, fmt.Errorf("invalid filter rules: %w", err)
	}
	return ret, nil
}

// Rules composes the zapfilter rule string. Specific filters come
// first, the default level catches the rest.
func (c *Config) Rules() string {
	parts := make([]string, 0, len(c.Filters)+1)
	for _, f := range c.Filters {
		parts = append(parts, fmt.Sprintf("%s:%s", f.Level, f.Loggers))
	}
	parts = append(parts, fmt.Sprintf("%s:*", c.DefaultLevel))
	return strings.Join(parts, " ")
}
