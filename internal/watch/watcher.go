// Package watch follows a track source and reports track changes.
package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/tessro/trackseek/internal/buttons"
	"github.com/tessro/trackseek/internal/core"
	"github.com/tessro/trackseek/internal/search"
	"github.com/tessro/trackseek/internal/source"
)

// EventType represents the type of now-playing event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventTrackCleared
)

// Event represents a change of the playing track.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *core.Track
	Current   *core.Track

	// Results holds one search URL per button for Current.
	Results []search.Result
}

// Watcher polls a source for track changes and emits events.
type Watcher struct {
	source   source.Source
	buttons  []buttons.Button
	interval time.Duration
	logger   *slog.Logger
	events   chan Event
	done     chan struct{}
}

// NewWatcher creates a new track watcher. Events for a new track carry the
// URLs built for each of list.
func NewWatcher(src source.Source, list []buttons.Button, interval time.Duration, logger *slog.Logger) *Watcher {
	if interval == 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		source:   src,
		buttons:  list,
		interval: interval,
		logger:   logger,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// Events returns the channel of track events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins polling. The first poll happens immediately.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	var prev *core.Track
	poll := func() {
		curr, err := w.poll(ctx)
		if err != nil {
			w.logger.Debug("poll failed", "error", err)
			return
		}
		if e, ok := w.diff(prev, curr); ok {
			select {
			case w.events <- e:
			default:
				// Drop event if channel is full
				w.logger.Warn("event dropped", "title", e.Current.String())
			}
		}
		prev = curr
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			poll()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

func (w *Watcher) poll(ctx context.Context) (*core.Track, error) {
	display, err := w.source.Current(ctx)
	if err != nil {
		return nil, err
	}
	return core.ParseTrack(display), nil
}

// diff compares two polls and returns the event to emit, if any.
func (w *Watcher) diff(prev, curr *core.Track) (Event, bool) {
	if prev.Equal(curr) {
		return Event{}, false
	}

	e := Event{
		Timestamp: time.Now(),
		Previous:  prev,
		Current:   curr,
	}
	if curr == nil {
		e.Type = EventTrackCleared
		return e, true
	}

	e.Type = EventTrackChange
	e.Results = search.BuildAll(w.buttons, *curr)
	return e, true
}
