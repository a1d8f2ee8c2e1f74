package buttons

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	seekerrors "github.com/tessro/trackseek/internal/errors"
)

// ConfigError describes the first invalid part of a button document.
type ConfigError struct {
	// Index is the 1-based position of the failing button, or 0 when the
	// document as a whole is invalid.
	Index   int
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("Button %d: %s", e.Index, e.Message)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{seekerrors.ErrInvalidConfig, e.Err}
	}
	return []error{seekerrors.ErrInvalidConfig}
}

var (
	paramFields    = []string{"artistParam", "artistsParam", "artistsMode", "artistsSeparator", "titleParam"}
	templateFields = []string{"queryParam", "titleFormat", "artistFormat", "artistsJoin"}
	stringFields   = append(append([]string{"queryTemplate"}, paramFields...), templateFields...)
)

// Validate checks a raw button document and returns nil or a *ConfigError
// for the first violation.
func Validate(raw []byte) error {
	_, err := Parse(raw)
	return err
}

// Parse validates a raw button document and decodes it into Buttons.
// The list is accepted or rejected as a whole.
func Parse(raw []byte) ([]Button, error) {
	entries, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}

	list := make([]Button, 0, len(entries))
	for i, entry := range entries {
		b, cerr := decodeButton(entry)
		if cerr != nil {
			cerr.Index = i + 1
			return nil, cerr
		}
		list = append(list, b)
	}
	return list, nil
}

// decodeDocument parses raw into one loosely typed value per button. The
// raw message of each entry is kept so extraParams can be read in order.
func decodeDocument(raw []byte) ([]entry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &ConfigError{Message: "Invalid JSON: " + err.Error(), Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level value")
		}
		return nil, &ConfigError{Message: "Invalid JSON: " + err.Error(), Err: err}
	}

	values, ok := doc.([]any)
	if !ok {
		return nil, &ConfigError{Message: "Config must be an array of buttons"}
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, &ConfigError{Message: "Invalid JSON: " + err.Error(), Err: err}
	}

	entries := make([]entry, len(values))
	for i := range values {
		entries[i] = entry{value: values[i], raw: raws[i]}
	}
	return entries, nil
}

type entry struct {
	value any
	raw   json.RawMessage
}

func decodeButton(e entry) (Button, *ConfigError) {
	obj, ok := e.value.(map[string]any)
	if !ok {
		return Button{}, &ConfigError{Message: "must be an object"}
	}

	text, ok := obj["text"].(string)
	if !ok || text == "" {
		return Button{}, &ConfigError{Message: `missing or invalid "text" field`}
	}
	url, ok := obj["url"].(string)
	if !ok || url == "" {
		return Button{}, &ConfigError{Message: `missing or invalid "url" field`}
	}

	b := Button{Text: text, URL: url}

	if extra := obj["extraParams"]; extra != nil {
		if _, ok := extra.(map[string]any); !ok {
			return Button{}, &ConfigError{Message: `"extraParams" must be an object`}
		}
		params, err := orderedParams(e.raw)
		if err != nil {
			return Button{}, err
		}
		b.ExtraParams = params
	}

	if truthy(obj["artistsParam"]) && !truthy(obj["artistsMode"]) {
		return Button{}, &ConfigError{Message: `"artistsMode" is required when using "artistsParam"`}
	}
	if mode := obj["artistsMode"]; truthy(mode) {
		switch s, _ := mode.(string); ArtistsMode(s) {
		case ModeJoin, ModeRepeat:
		default:
			return Button{}, &ConfigError{Message: `"artistsMode" must be "join" or "repeat"`}
		}
	}
	if truthy(obj["queryTemplate"]) && !truthy(obj["queryParam"]) {
		return Button{}, &ConfigError{Message: `"queryParam" is required when using "queryTemplate"`}
	}

	fields := make(map[string]optional, len(stringFields))
	for _, name := range stringFields {
		v, err := optionalString(obj, name)
		if err != nil {
			return Button{}, err
		}
		fields[name] = v
	}

	if fields["queryTemplate"].set() {
		b.Strategy = TemplateStrategy{
			QueryTemplate: fields["queryTemplate"].value,
			QueryParam:    fields["queryParam"].value,
			TitleFormat:   fields["titleFormat"].or(DefaultFormat),
			ArtistFormat:  fields["artistFormat"].or(DefaultFormat),
			ArtistsJoin:   fields["artistsJoin"].or(DefaultArtistsJoin),
		}
		b.Ignored = setFields(fields, paramFields)
	} else {
		b.Strategy = ParamStrategy{
			ArtistParam:      fields["artistParam"].value,
			ArtistsParam:     fields["artistsParam"].value,
			ArtistsMode:      ArtistsMode(fields["artistsMode"].value),
			ArtistsSeparator: fields["artistsSeparator"].or(DefaultArtistsSeparator),
			TitleParam:       fields["titleParam"].value,
		}
		b.Ignored = setFields(fields, templateFields)
	}

	return b, nil
}

// optional is a string field that may be absent. An empty string is present
// but not set.
type optional struct {
	value   string
	present bool
}

func (o optional) set() bool {
	return o.value != ""
}

func (o optional) or(def string) string {
	if o.present {
		return o.value
	}
	return def
}

// truthy reports whether a decoded JSON value is set: null, false, 0 and ""
// are not.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// optionalString reads an optional string field; null counts as absent.
func optionalString(obj map[string]any, name string) (optional, *ConfigError) {
	v, ok := obj[name]
	if !ok || v == nil {
		return optional{}, nil
	}
	s, ok := v.(string)
	if !ok {
		return optional{}, &ConfigError{Message: fmt.Sprintf("%q must be a string", name)}
	}
	return optional{value: s, present: true}, nil
}

func setFields(fields map[string]optional, names []string) []string {
	var out []string
	for _, name := range names {
		if fields[name].set() {
			out = append(out, name)
		}
	}
	return out
}

// orderedParams reads the extraParams object of a raw button in document
// order. A repeated key keeps its first position and its last value.
func orderedParams(raw json.RawMessage) (Params, *ConfigError) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &ConfigError{Message: `"extraParams" must be an object`, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(fields["extraParams"]))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, &ConfigError{Message: `"extraParams" must be an object`, Err: err}
	}

	var params Params
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ConfigError{Message: `"extraParams" must be an object`, Err: err}
		}
		key, _ := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, &ConfigError{Message: `"extraParams" must be an object`, Err: err}
		}
		value, ok := paramValue(v)
		if !ok {
			return nil, &ConfigError{Message: fmt.Sprintf(`"extraParams" value for %q must be a string, number or boolean`, key)}
		}

		if i, seen := index[key]; seen {
			params[i].Value = value
			continue
		}
		index[key] = len(params)
		params = append(params, Param{Key: key, Value: value})
	}
	return params, nil
}

func paramValue(v any) (string, bool) {
	switch typed := v.(type) {
	case string:
		return typed, true
	case bool:
		return strconv.FormatBool(typed), true
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return typed.String(), true
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	default:
		return "", false
	}
}
