// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds fetchdeps configuration
type Config struct {
	Debug bool       `yaml:"debug"`
	Quiet bool       `yaml:"quiet"`
	Brew  BrewConfig `yaml:"brew"`
}

// BrewConfig holds Homebrew-specific configuration
type BrewConfig struct {
	Executable string `yaml:"executable"` // Default: brew, looked up in PATH
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug: false,
		Quiet: false,
		Brew: BrewConfig{
			Executable: "brew",
		},
	}
}

// DefaultConfigPath returns $HOME/.config/fetchdeps/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fetchdeps", "config.yaml"), nil
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Brew.Executable == "" {
		cfg.Brew.Executable = "brew"
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
