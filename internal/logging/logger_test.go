package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tessro/trackseek/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{" INFO ", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHandlerFormats(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, "json", slog.LevelInfo)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	slog.New(h).Info("hello", "button", "MB")
	if !strings.Contains(buf.String(), `"button":"MB"`) {
		t.Errorf("json output = %q", buf.String())
	}

	if _, err := NewHandler(&buf, "xml", slog.LevelInfo); err == nil {
		t.Error("NewHandler(xml) error = nil, want error")
	}
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackseek.log")
	logger, closeFn, err := New(config.LogConfig{Level: "warn", File: path, Format: "text"}, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "dropped") {
		t.Errorf("log contains info record below warn level: %q", data)
	}
	if !strings.Contains(string(data), "kept") {
		t.Errorf("log missing warn record: %q", data)
	}
}

func TestNewVerboseForcesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackseek.log")
	logger, closeFn, err := New(config.LogConfig{Level: "error", File: path}, true)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("detail")
	closeFn()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "detail") {
		t.Errorf("verbose logger dropped debug record: %q", data)
	}
}
