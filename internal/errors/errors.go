package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNoTrack        = errors.New("no track is currently playing")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrConfigNotFound = errors.New("config file not found")
	ErrButtonNotFound = errors.New("button not found")
	ErrNoSource       = errors.New("no track source configured")
	ErrOpenFailed     = errors.New("failed to open browser")
)

// SeekError wraps an error with a user-friendly suggestion.
type SeekError struct {
	Err        error
	Suggestion string
}

func (e *SeekError) Error() string {
	return e.Err.Error()
}

func (e *SeekError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &SeekError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// IsNotice reports whether err is informational rather than a failure.
// A missing track is told to the user but is not a crash.
func IsNotice(err error) bool {
	return errors.Is(err, ErrNoTrack)
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var seekErr *SeekError
	if errors.As(err, &seekErr) && seekErr.Suggestion != "" {
		return seekErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrNoTrack) {
		return "Start playback, or pass the track as \"Title • Artist\""
	}

	if errors.Is(err, ErrNoSource) {
		return "Pass the track as an argument or set source.command in the config file"
	}

	if errors.Is(err, ErrButtonNotFound) {
		return "Run 'trackseek buttons list' to see configured buttons"
	}

	// Config errors
	if errors.Is(err, ErrInvalidConfig) {
		return "Run 'trackseek buttons validate' to check the button configuration"
	}
	if errors.Is(err, ErrConfigNotFound) || strings.Contains(errStr, "config") {
		return "Run 'trackseek config init' to create a configuration file"
	}

	if errors.Is(err, ErrOpenFailed) {
		return "Set browser.command in the config file, or use --print and open the URL yourself"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
