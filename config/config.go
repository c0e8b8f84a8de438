package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config stores UI and runtime preferences. Bank data lives in the store
// package's bank file, not here.
type Config struct {
	FlipIntervalMS int    `json:"flipIntervalMs,omitempty"`
	SaveDelayMS    int    `json:"saveDelayMs,omitempty"`
	AutoConnect    bool   `json:"autoConnect"`
	PalettePath    string `json:"palettePath,omitempty"`
	Debug          bool   `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		FlipIntervalMS: 2000,
		SaveDelayMS:    1000,
		AutoConnect:    true,
	}
}

// FlipInterval returns the cursor blink period.
func (c *Config) FlipInterval() time.Duration {
	if c.FlipIntervalMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.FlipIntervalMS) * time.Millisecond
}

// SaveDelay returns the debounce delay for bank writes.
func (c *Config) SaveDelay() time.Duration {
	if c.SaveDelayMS <= 0 {
		return time.Second
	}
	return time.Duration(c.SaveDelayMS) * time.Millisecond
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ccgrid"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
