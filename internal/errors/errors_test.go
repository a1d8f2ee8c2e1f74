package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"explicit", WithSuggestion(errors.New("boom"), "try again"), "try again"},
		{"no track", fmt.Errorf("search: %w", ErrNoTrack), "Start playback, or pass the track as \"Title • Artist\""},
		{"button", fmt.Errorf("%w: Discogs", ErrButtonNotFound), "Run 'trackseek buttons list' to see configured buttons"},
		{"invalid config", fmt.Errorf("Button 1: %w", ErrInvalidConfig), "Run 'trackseek buttons validate' to check the button configuration"},
		{"unknown", errors.New("something odd"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSuggestion(tt.err); got != tt.want {
				t.Errorf("GetSuggestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	got := Format(ErrOpenFailed)
	if !strings.HasPrefix(got, "Error: failed to open browser") {
		t.Errorf("Format() = %q, want error prefix", got)
	}
	if !strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q, want suggestion", got)
	}
	if got := Format(errors.New("plain")); got != "Error: plain" {
		t.Errorf("Format() = %q, want %q", got, "Error: plain")
	}
}

func TestIsNotice(t *testing.T) {
	if !IsNotice(fmt.Errorf("wrap: %w", ErrNoTrack)) {
		t.Error("IsNotice(ErrNoTrack) = false, want true")
	}
	if IsNotice(ErrInvalidConfig) {
		t.Error("IsNotice(ErrInvalidConfig) = true, want false")
	}
}

func TestPartialResult(t *testing.T) {
	var p PartialResult[[]string]
	p.AddError(nil)
	if p.HasErrors() {
		t.Fatal("HasErrors() = true after adding nil")
	}
	p.AddError(errors.New("first"))
	if got := p.ErrorSummary(); got != "first" {
		t.Errorf("ErrorSummary() = %q, want %q", got, "first")
	}
	p.AddError(errors.New("second"))
	if got := p.ErrorSummary(); !strings.HasPrefix(got, "2 errors occurred:") {
		t.Errorf("ErrorSummary() = %q, want count prefix", got)
	}
}
