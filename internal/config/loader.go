package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a client profile loaded from a YAML file. Values
// from the profile apply under explicit command-line flags.
type Config struct {
	UserAgent string            `yaml:"userAgent,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty"`
	Insecure  bool              `yaml:"insecure,omitempty"`
	Timeout   string            `yaml:"timeout,omitempty"`
	Output    string            `yaml:"output,omitempty"`
}

// LoadConfig loads a profile from a YAML file
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if errs := ValidateConfig(&config); len(errs) > 0 {
		return nil, fmt.Errorf("config validation failed: %s", errs[0].Error())
	}

	return &config, nil
}

// TimeoutDuration returns the configured timeout as a duration, or zero
// when none is set. Validity has already been checked by ValidateConfig.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}
