// Package config manages hostdiag settings
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/edgecli/hostdiag/internal/osdetect"
)

const (
	// ConfigDirName is the name of the config directory
	ConfigDirName = ".hostdiag"
	// ConfigFileName is the name of the config file
	ConfigFileName = "config.yaml"
	// PlaceholderEnv overrides the placeholder from the config file
	PlaceholderEnv = "HOSTDIAG_PLACEHOLDER"
)

// Config holds the hostdiag settings
type Config struct {
	// Placeholder is reported whenever no source could describe the host
	Placeholder string `yaml:"placeholder" json:"placeholder"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`
	// NoColor disables ANSI colors in terminal output
	NoColor bool `yaml:"no_color" json:"no_color"`
}

// Paths holds commonly used paths
type Paths struct {
	// ConfigDir is ~/.hostdiag
	ConfigDir string
	// ConfigFile is ~/.hostdiag/config.yaml
	ConfigFile string
}

// GetPaths returns the standard paths
func GetPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ConfigDirName)
	return &Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, ConfigFileName),
	}, nil
}

// Default returns a new Config with default values
func Default() *Config {
	return &Config{
		Placeholder: osdetect.DefaultPlaceholder,
		LogLevel:    "warn",
	}
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing file yields defaults. JSON files are accepted too.
func Load(path string) (*Config, error) {
	if path == "" {
		paths, err := GetPaths()
		if err != nil {
			return nil, err
		}
		path = paths.ConfigFile
	}

	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v, ok := os.LookupEnv(PlaceholderEnv); ok && v != "" {
		config.Placeholder = v
	}
	if config.Placeholder == "" {
		config.Placeholder = osdetect.DefaultPlaceholder
	}
	return config, nil
}

// Save writes the configuration as YAML to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
