package config

import (
	"os"
	"path/filepath"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	open := true
	return &Config{
		Buttons: ButtonsConfig{
			File: defaultButtonsFile(),
		},
		Source: SourceConfig{
			Timeout: 2000,
		},
		Browser: BrowserConfig{
			Open: &open,
		},
		Watch: WatchConfig{
			Interval: 1000,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Buttons
	if c.Buttons.File == "" {
		c.Buttons.File = d.Buttons.File
	}
	c.Buttons.File = expandHome(c.Buttons.File)

	// Source
	if c.Source.Timeout == 0 {
		c.Source.Timeout = d.Source.Timeout
	}
	c.Source.File = expandHome(c.Source.File)

	// Browser
	if c.Browser.Open == nil {
		c.Browser.Open = d.Browser.Open
	}

	// Watch
	if c.Watch.Interval == 0 {
		c.Watch.Interval = d.Watch.Interval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	c.Log.File = expandHome(c.Log.File)
}

// Dir returns the trackseek configuration directory.
func Dir() string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".trackseek"
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "trackseek")
}

func defaultButtonsFile() string {
	return filepath.Join(Dir(), "buttons.json")
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
