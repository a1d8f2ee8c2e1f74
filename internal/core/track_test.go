package core

import (
	"reflect"
	"testing"
)

func TestParseTrack(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    *Track
	}{
		{
			name:    "two artists",
			display: "Song • Artist A, Artist B",
			want:    &Track{Title: "Song", Artists: []string{"Artist A", "Artist B"}},
		},
		{
			name:    "single artist",
			display: "Song • Artist",
			want:    &Track{Title: "Song", Artists: []string{"Artist"}},
		},
		{
			name:    "no delimiter",
			display: "NoDelimiterHere",
			want:    nil,
		},
		{
			name:    "empty string",
			display: "",
			want:    nil,
		},
		{
			name:    "extra segments dropped",
			display: "Song • A • Podcast",
			want:    &Track{Title: "Song", Artists: []string{"A"}},
		},
		{
			name:    "empty and duplicate artists kept",
			display: "Song • A, , A",
			want:    &Track{Title: "Song", Artists: []string{"A", "", "A"}},
		},
		{
			name:    "empty title",
			display: " • A",
			want:    &Track{Title: "", Artists: []string{"A"}},
		},
		{
			name:    "comma without space is not a separator",
			display: "Song • A,B",
			want:    &Track{Title: "Song", Artists: []string{"A,B"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTrack(tt.display)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTrack(%q) = %+v, want %+v", tt.display, got, tt.want)
			}
		})
	}
}

func TestTrackString(t *testing.T) {
	display := "Song • Artist A, Artist B"
	track := ParseTrack(display)
	if got := track.String(); got != display {
		t.Errorf("String() = %q, want %q", got, display)
	}

	var nilTrack *Track
	if got := nilTrack.String(); got != "" {
		t.Errorf("nil String() = %q, want empty", got)
	}
}

func TestTrackPrimaryArtist(t *testing.T) {
	track := &Track{Title: "X", Artists: []string{"Y", "Z"}}
	if got := track.PrimaryArtist(); got != "Y" {
		t.Errorf("PrimaryArtist() = %q, want %q", got, "Y")
	}
}

func TestTrackEqual(t *testing.T) {
	a := &Track{Title: "X", Artists: []string{"Y", "Z"}}
	b := &Track{Title: "X", Artists: []string{"Y", "Z"}}
	c := &Track{Title: "X", Artists: []string{"Z", "Y"}}

	if !a.Equal(b) {
		t.Error("Equal() = false for identical tracks")
	}
	if a.Equal(c) {
		t.Error("Equal() = true for reordered artists")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) = true")
	}
	var n *Track
	if !n.Equal(nil) {
		t.Error("nil.Equal(nil) = false")
	}
}
