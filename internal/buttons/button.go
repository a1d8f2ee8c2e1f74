// Package buttons decodes and stores the user's search button configuration.
//
// A button describes one external search destination and how to turn the
// playing track into a URL for it. The JSON document is an array of objects;
// Parse validates it wholesale and returns typed Buttons whose Strategy is
// either a ParamStrategy or a TemplateStrategy.
package buttons

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ArtistsMode controls how multiple artists map onto a single parameter.
type ArtistsMode string

const (
	// ModeJoin joins all artists into one value.
	ModeJoin ArtistsMode = "join"
	// ModeRepeat repeats the parameter once per artist.
	ModeRepeat ArtistsMode = "repeat"
)

// Defaults for optional fields.
const (
	DefaultArtistsSeparator = ","
	DefaultFormat           = "{}"
	DefaultArtistsJoin      = ", "
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered set of query parameters. It encodes as a JSON object
// with keys in their original order.
type Params []Param

// MarshalJSON writes the params as an object, preserving order.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, param := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(param.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(param.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Strategy selects how a button builds its query. It is either a
// ParamStrategy or a TemplateStrategy.
type Strategy interface {
	strategy()
}

// ParamStrategy sets individually named query parameters.
type ParamStrategy struct {
	ArtistParam      string
	ArtistsParam     string
	ArtistsMode      ArtistsMode
	ArtistsSeparator string
	TitleParam       string
}

// TemplateStrategy renders a placeholder template into one query parameter.
type TemplateStrategy struct {
	QueryTemplate string
	QueryParam    string
	TitleFormat   string
	ArtistFormat  string
	ArtistsJoin   string
}

func (ParamStrategy) strategy()    {}
func (TemplateStrategy) strategy() {}

// Button is one configured search destination.
type Button struct {
	Text        string
	URL         string
	ExtraParams Params
	Strategy    Strategy

	// Ignored lists fields that were set but have no effect under the
	// selected strategy.
	Ignored []string
}

// Mode returns "template" or "param".
func (b Button) Mode() string {
	if _, ok := b.Strategy.(TemplateStrategy); ok {
		return "template"
	}
	return "param"
}

type buttonJSON struct {
	Text             string  `json:"text"`
	URL              string  `json:"url"`
	ArtistParam      string  `json:"artistParam,omitempty"`
	ArtistsParam     string  `json:"artistsParam,omitempty"`
	ArtistsMode      string  `json:"artistsMode,omitempty"`
	ArtistsSeparator *string `json:"artistsSeparator,omitempty"`
	TitleParam       string  `json:"titleParam,omitempty"`
	QueryTemplate    string  `json:"queryTemplate,omitempty"`
	QueryParam       string  `json:"queryParam,omitempty"`
	TitleFormat      *string `json:"titleFormat,omitempty"`
	ArtistFormat     *string `json:"artistFormat,omitempty"`
	ArtistsJoin      *string `json:"artistsJoin,omitempty"`
	ExtraParams      Params  `json:"extraParams,omitempty"`
}

// MarshalJSON writes the button in configuration document form, with
// defaults resolved.
func (b Button) MarshalJSON() ([]byte, error) {
	out := buttonJSON{
		Text:        b.Text,
		URL:         b.URL,
		ExtraParams: b.ExtraParams,
	}
	switch s := b.Strategy.(type) {
	case ParamStrategy:
		out.ArtistParam = s.ArtistParam
		out.ArtistsParam = s.ArtistsParam
		out.ArtistsMode = string(s.ArtistsMode)
		if s.ArtistsMode == ModeJoin || s.ArtistsSeparator != DefaultArtistsSeparator {
			out.ArtistsSeparator = &s.ArtistsSeparator
		}
		out.TitleParam = s.TitleParam
	case TemplateStrategy:
		out.QueryTemplate = s.QueryTemplate
		out.QueryParam = s.QueryParam
		out.TitleFormat = &s.TitleFormat
		out.ArtistFormat = &s.ArtistFormat
		out.ArtistsJoin = &s.ArtistsJoin
	}
	return json.Marshal(out)
}

// Find returns the button whose text matches name, ignoring case.
func Find(list []Button, name string) (Button, bool) {
	for _, b := range list {
		if strings.EqualFold(b.Text, name) {
			return b, true
		}
	}
	return Button{}, false
}
