package config

import (
	"fmt"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	if config.Layout.HeaderHeight <= 0 {
		validationErrors = append(validationErrors, "layout.header_height must be positive")
	}
	if config.Layout.HoverRatio <= 0 || config.Layout.HoverRatio > 0.5 {
		validationErrors = append(validationErrors, "layout.hover_ratio must be in (0, 0.5]")
	}
	if config.Layout.HighlightRatio <= 0 || config.Layout.HighlightRatio > 1 {
		validationErrors = append(validationErrors, "layout.highlight_ratio must be in (0, 1]")
	}
	if config.Layout.SplitRatio <= 0 || config.Layout.SplitRatio >= 1 {
		validationErrors = append(validationErrors, "layout.split_ratio must be in (0, 1)")
	}

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
