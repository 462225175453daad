package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SynthOutputConfig defines the synth MIDI output
type SynthOutputConfig struct {
	PortName string `json:"portName,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	DrumTempoMs    int    `json:"drumTempoMs,omitempty"`
	LastInstrument string `json:"lastInstrument,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	SynthOutput SynthOutputConfig `json:"synthOutput,omitempty"`
	UI          UIConfig          `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			DrumTempoMs:    150,
			LastInstrument: "Piano",
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "brat"), nil
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
	return LoadFrom(path)
}

// LoadFrom reads a config from an explicit path
func LoadFrom(path string) (*Config, error) {
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

	if cfg.UI.DrumTempoMs == 0 {
		cfg.UI.DrumTempoMs = 150
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
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
