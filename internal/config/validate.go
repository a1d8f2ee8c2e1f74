package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Buttons.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("buttons: %w", err))
	}
	if err := c.Source.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("source: %w", err))
	}
	if err := c.Watch.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("watch: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks ButtonsConfig for errors.
func (c *ButtonsConfig) Validate() error {
	if c.File == "" {
		return errors.New("file must not be empty")
	}
	return nil
}

// Validate checks SourceConfig for errors.
func (c *SourceConfig) Validate() error {
	if c.Command != "" && c.File != "" {
		return errors.New("command and file are mutually exclusive")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must be non-negative")
	}
	return nil
}

// Validate checks WatchConfig for errors.
func (c *WatchConfig) Validate() error {
	if c.Interval < 0 {
		return errors.New("interval must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	switch c.Format {
	case "", "text", "json":
		// valid
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Format)
	}
	return nil
}
