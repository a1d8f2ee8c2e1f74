package buttons

// DefaultDocument is the button document used when none is configured or the
// stored one cannot be used.
const DefaultDocument = `[
  {
    "text": "MB",
    "url": "https://musicbrainz.org/search",
    "queryTemplate": "{title} AND {artists}",
    "queryParam": "query",
    "titleFormat": "\"{}\"",
    "artistFormat": "artist:\"{}\"",
    "artistsJoin": " AND ",
    "extraParams": {
      "type": "recording",
      "advanced": "1"
    }
  }
]
`

// Default returns the built-in button list.
func Default() []Button {
	return []Button{
		{
			Text: "MB",
			URL:  "https://musicbrainz.org/search",
			ExtraParams: Params{
				{Key: "type", Value: "recording"},
				{Key: "advanced", Value: "1"},
			},
			Strategy: TemplateStrategy{
				QueryTemplate: "{title} AND {artists}",
				QueryParam:    "query",
				TitleFormat:   `"{}"`,
				ArtistFormat:  `artist:"{}"`,
				ArtistsJoin:   " AND ",
			},
		},
	}
}
