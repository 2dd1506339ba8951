// Package config provides configuration management for mosaic with Viper integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/bnema/mosaic/pkg/layout"
)

// File permission constants
const (
	dirPerm  = 0o755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0o644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for mosaic.
type Config struct {
	Layout   LayoutConfig   `mapstructure:"layout" yaml:"layout" json:"layout"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging" json:"logging"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database" json:"database"`
}

// LayoutConfig holds the geometry constants of the layout engine.
type LayoutConfig struct {
	// HeaderHeight is the tab header strip height in logical pixels.
	HeaderHeight float64 `mapstructure:"header_height" yaml:"header_height" json:"header_height"`
	// HoverRatio is the fraction of a panel body, from each edge, that
	// acts as an edge drop band.
	HoverRatio float64 `mapstructure:"hover_ratio" yaml:"hover_ratio" json:"hover_ratio"`
	// HighlightRatio scales the hover band to the feedback highlight.
	HighlightRatio float64 `mapstructure:"highlight_ratio" yaml:"highlight_ratio" json:"highlight_ratio"`
	// SplitRatio is the share given to a freshly split-off panel.
	SplitRatio float64 `mapstructure:"split_ratio" yaml:"split_ratio" json:"split_ratio"`
}

// Metrics converts the config section to the engine's metrics value.
func (l LayoutConfig) Metrics() layout.Metrics {
	return layout.Metrics{
		HeaderHeight:   l.HeaderHeight,
		HoverRatio:     l.HoverRatio,
		HighlightRatio: l.HighlightRatio,
		SplitRatio:     l.SplitRatio,
	}
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// DatabaseConfig holds the snapshot database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

var (
	mu      sync.RWMutex
	current *Config
)

// Load reads the configuration file (creating defaults when absent), applies
// environment overrides, validates the result, and installs it as the
// current configuration.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("MOSAIC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// First run: write the defaults so the user has a file to edit.
		if writeErr := writeDefaultConfig(configDir); writeErr != nil {
			return nil, writeErr
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	mu.Lock()
	current = cfg
	mu.Unlock()
	return cfg, nil
}

// Get returns the current configuration, loading defaults if Load was never
// called.
func Get() *Config {
	mu.RLock()
	if current != nil {
		defer mu.RUnlock()
		return current
	}
	mu.RUnlock()

	cfg := DefaultConfig()
	mu.Lock()
	current = cfg
	mu.Unlock()
	return cfg
}

// Watch re-reads and re-validates the configuration whenever the config file
// changes, invoking onChange with each valid new configuration. Invalid
// edits are reported to onError and the previous configuration stays active.
func Watch(onChange func(*Config), onError func(error)) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file for watching: %w", err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			onError(fmt.Errorf("failed to unmarshal config: %w", err))
			return
		}
		if err := validateConfig(cfg); err != nil {
			onError(err)
			return
		}
		mu.Lock()
		current = cfg
		mu.Unlock()
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// writeDefaultConfig materializes the default configuration file and its
// JSON schema next to it.
func writeDefaultConfig(configDir string) error {
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	path := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), filePerm); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	if err := GenerateSchemaFile(); err != nil {
		return err
	}
	return nil
}
