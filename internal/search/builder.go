// Package search builds search URLs from buttons and tracks.
package search

import (
	"strings"

	"github.com/tessro/trackseek/internal/buttons"
	"github.com/tessro/trackseek/internal/core"
)

// Placeholders recognised in a query template.
const (
	PlaceholderTitle   = "{title}"
	PlaceholderArtist  = "{artist}"
	PlaceholderArtists = "{artists}"

	formatSlot = "{}"
)

// Result is the URL built for one button.
type Result struct {
	Button string `json:"button"`
	URL    string `json:"url"`
}

// Build returns the search URL for track under button b.
func Build(b buttons.Button, track core.Track) string {
	return b.URL + "?" + BuildQuery(b, track).Encode()
}

// BuildAll builds one URL per button, in button order.
func BuildAll(list []buttons.Button, track core.Track) []Result {
	results := make([]Result, 0, len(list))
	for _, b := range list {
		results = append(results, Result{Button: b.Text, URL: Build(b, track)})
	}
	return results
}

// BuildQuery returns the query parameters for track under button b.
func BuildQuery(b buttons.Button, track core.Track) *Query {
	q := NewQuery(b.ExtraParams)

	switch s := b.Strategy.(type) {
	case buttons.TemplateStrategy:
		q.Set(s.QueryParam, RenderTemplate(s, track))
	case buttons.ParamStrategy:
		applyParams(q, s, track)
	}

	return q
}

func applyParams(q *Query, s buttons.ParamStrategy, track core.Track) {
	if s.ArtistParam != "" {
		q.Set(s.ArtistParam, track.PrimaryArtist())
	}

	if s.ArtistsParam != "" {
		switch s.ArtistsMode {
		case buttons.ModeRepeat:
			for _, artist := range track.Artists {
				q.Add(s.ArtistsParam, artist)
			}
		case buttons.ModeJoin:
			q.Set(s.ArtistsParam, strings.Join(track.Artists, s.ArtistsSeparator))
		}
	}

	if s.TitleParam != "" {
		q.Set(s.TitleParam, track.Title)
	}
}

// RenderTemplate substitutes the formatted track into the query template.
// Each placeholder is replaced at most once, title first, then artist, then
// artists.
func RenderTemplate(s buttons.TemplateStrategy, track core.Track) string {
	title := applyFormat(s.TitleFormat, track.Title)
	artist := applyFormat(s.ArtistFormat, track.PrimaryArtist())

	formatted := make([]string, len(track.Artists))
	for i, a := range track.Artists {
		formatted[i] = applyFormat(s.ArtistFormat, a)
	}
	artists := strings.Join(formatted, s.ArtistsJoin)

	query := strings.Replace(s.QueryTemplate, PlaceholderTitle, title, 1)
	query = strings.Replace(query, PlaceholderArtist, artist, 1)
	query = strings.Replace(query, PlaceholderArtists, artists, 1)
	return query
}

// applyFormat replaces the first "{}" in format with value.
func applyFormat(format, value string) string {
	return strings.Replace(format, formatSlot, value, 1)
}
