package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateConfig validates a loaded profile
func ValidateConfig(config *Config) []ValidationError {
	var errors []ValidationError

	for name := range config.Headers {
		if strings.TrimSpace(name) == "" {
			errors = append(errors, ValidationError{
				Path:    "headers",
				Message: "header names must not be empty",
			})
		}
		if strings.Contains(name, ":") {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("headers.%s", name),
				Message: "header names must not contain a colon",
			})
		}
	}

	if config.Timeout != "" {
		if _, err := time.ParseDuration(config.Timeout); err != nil {
			errors = append(errors, ValidationError{
				Path:    "timeout",
				Message: fmt.Sprintf("invalid duration %q", config.Timeout),
			})
		}
	}

	if config.Output != "" {
		switch config.Output {
		case "text", "json", "yaml":
		default:
			errors = append(errors, ValidationError{
				Path:    "output",
				Message: fmt.Sprintf("unsupported output format %q", config.Output),
			})
		}
	}

	return errors
}
