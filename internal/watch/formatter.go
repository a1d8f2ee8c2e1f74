package watch

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/trackseek/internal/search"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	showURLs      bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithURLs prints the search URLs under each track change.
func WithURLs(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showURLs = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji: true,
		showURLs:  true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLines(e)
}

func (f *Formatter) formatLines(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}
	parts = append(parts, eventDescription(e))

	line := strings.Join(parts, " ")
	if !f.showURLs || len(e.Results) == 0 {
		return line
	}

	var sb strings.Builder
	sb.WriteString(line)
	for _, r := range e.Results {
		fmt.Fprintf(&sb, "\n  %s  %s", r.Button, r.URL)
	}
	return sb.String()
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
		URLs:      e.Results,
	}
	if e.Current != nil {
		data.Title = e.Current.Title
		data.Artist = e.Current.PrimaryArtist()
		data.Artists = e.Current.Artists
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLines(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Title     string
	Artist    string
	Artists   []string
	URLs      []search.Result
}

// eventDescription returns a human-readable description of the event.
func eventDescription(e Event) string {
	switch e.Type {
	case EventTrackChange:
		if e.Current != nil {
			return fmt.Sprintf("Now playing: %s - %s",
				strings.Join(e.Current.Artists, ", "),
				e.Current.Title)
		}
		return "Track changed"
	case EventTrackCleared:
		return "Nothing playing"
	default:
		return "Unknown event"
	}
}

func eventEmoji(t EventType) string {
	switch t {
	case EventTrackChange:
		return "🎵"
	case EventTrackCleared:
		return "⏹️"
	default:
		return "❓"
	}
}

func eventTypeName(t EventType) string {
	switch t {
	case EventTrackChange:
		return "track_change"
	case EventTrackCleared:
		return "track_cleared"
	default:
		return "unknown"
	}
}
