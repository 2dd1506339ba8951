package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetConfigDir returns the mosaic configuration directory, honoring
// XDG_CONFIG_HOME.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mosaic"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mosaic"), nil
}

// GetDataDir returns the mosaic data directory, honoring XDG_DATA_HOME.
func GetDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "mosaic"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "mosaic"), nil
}

// GetDatabaseFile returns the default snapshot database path.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "snapshots.db"), nil
}
