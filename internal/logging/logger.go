// Package logging builds the slog logger used for diagnostics.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tessro/trackseek/internal/config"
)

// New builds a logger for the configured sink and returns a cleanup function.
// Logs go to stderr unless cfg.File is set. verbose forces debug level.
func New(cfg config.LogConfig, verbose bool) (*slog.Logger, func(), error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %q: %w", cfg.File, err)
		}
		out = file
		closeFn = func() { _ = file.Close() }
	}

	handler, err := NewHandler(out, cfg.Format, level)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return slog.New(handler), closeFn, nil
}

// NewHandler creates a text or json handler writing to out.
func NewHandler(out io.Writer, format string, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.NewTextHandler(out, opts), nil
	case "json":
		return slog.NewJSONHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
}

// ParseLevel converts a configured level name into a slog.Level.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported level %q", value)
	}
}
