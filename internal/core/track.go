package core

import "strings"

// Separators used by the now-playing display string, "<title> • <artist>, <artist>".
const (
	TitleSeparator  = " • "
	ArtistSeparator = ", "
)

// Track represents the currently playing track.
type Track struct {
	Title   string   `json:"title"`
	Artists []string `json:"artists"`
}

// PrimaryArtist returns the first listed artist.
func (t *Track) PrimaryArtist() string {
	if t == nil || len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// String renders the track back into display string form.
func (t *Track) String() string {
	if t == nil {
		return ""
	}
	return t.Title + TitleSeparator + strings.Join(t.Artists, ArtistSeparator)
}

// Equal reports whether two tracks have the same title and artists.
func (t *Track) Equal(other *Track) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Title != other.Title || len(t.Artists) != len(other.Artists) {
		return false
	}
	for i := range t.Artists {
		if t.Artists[i] != other.Artists[i] {
			return false
		}
	}
	return true
}

// ParseTrack parses a display string such as "Song • Artist A, Artist B".
// It returns nil when the string has no artist segment. Segments after the
// second separator are dropped, and artist names are kept exactly as split.
func ParseTrack(display string) *Track {
	parts := strings.Split(display, TitleSeparator)
	if len(parts) < 2 {
		return nil
	}
	return &Track{
		Title:   parts[0],
		Artists: strings.Split(parts[1], ArtistSeparator),
	}
}
