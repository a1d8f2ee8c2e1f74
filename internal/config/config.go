package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.trackseekrc, $XDG_CONFIG_HOME/trackseek/config.toml, ~/.config/trackseek/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply environment variable overrides, then defaults
	applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	cfg.ApplyDefaults()
	return cfg, nil
}

// Path returns the file Load would read, or the preferred location for a
// new file if none exists.
func Path() string {
	if p := findConfigFile(); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".trackseekrc"),
		filepath.Join(Dir(), "config.toml"),
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Buttons
	if v := os.Getenv("TRACKSEEK_BUTTONS_FILE"); v != "" {
		cfg.Buttons.File = v
	}
	if v := os.Getenv("TRACKSEEK_BUTTONS_DEFAULT"); v != "" {
		cfg.Buttons.Default = v
	}

	// Source
	if v := os.Getenv("TRACKSEEK_SOURCE_COMMAND"); v != "" {
		cfg.Source.Command = v
	}
	if v := os.Getenv("TRACKSEEK_SOURCE_FILE"); v != "" {
		cfg.Source.File = v
	}

	// Browser
	if v := os.Getenv("TRACKSEEK_BROWSER_COMMAND"); v != "" {
		cfg.Browser.Command = v
	}
	if v := os.Getenv("TRACKSEEK_BROWSER_OPEN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Browser.Open = &b
		}
	}

	// Watch
	if v := os.Getenv("TRACKSEEK_WATCH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Watch.Interval = i
		}
	}

	// Log
	if v := os.Getenv("TRACKSEEK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TRACKSEEK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
