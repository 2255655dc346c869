package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// configEnv names an environment variable holding a config path. It is
// consulted after the -config flag and before the search locations.
const configEnv = "TERRAINCTL_CONFIG"

const configFileName = "config.yaml"

// Load builds the configuration: defaults, then the config file if one is
// found, then command-line flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	if path := findConfigFile(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the config file to load, or "" when none applies.
// An explicit -config path or TERRAINCTL_CONFIG is returned even when missing,
// so that Load reports it instead of silently using defaults.
func findConfigFile() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	if path := os.Getenv(configEnv); path != "" {
		return path
	}
	for _, dir := range []string{".", ConfigDir()} {
		path := filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for terrainctl.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "MarchingTerrain")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MarchingTerrain")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "marching-terrain")
	}
	return filepath.Join(home, ".config", "marching-terrain")
}

// loadFromFile merges a YAML file into cfg. Keys that match no setting are
// rejected, so a misspelled option fails loudly.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
