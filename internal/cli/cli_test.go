package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tessro/trackseek/internal/buttons"
	seekerrors "github.com/tessro/trackseek/internal/errors"
	"github.com/tessro/trackseek/internal/search"
)

const discogsButtons = `[
  {"text": "Discogs", "url": "https://www.discogs.com/search", "artistsParam": "artist", "artistsMode": "repeat", "titleParam": "track"},
  {"text": "RYM", "url": "https://rateyourmusic.com/search", "queryTemplate": "{artist} {title}", "queryParam": "searchterm", "extraParams": {"searchtype": "z"}}
]`

// setup writes a config file pointing at a buttons file in a temp dir and
// returns the config path and buttons path.
func setup(t *testing.T, buttonsDoc string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	buttonsPath := filepath.Join(dir, "buttons.json")
	if buttonsDoc != "" {
		if err := os.WriteFile(buttonsPath, []byte(buttonsDoc), 0644); err != nil {
			t.Fatal(err)
		}
	}

	configPath := filepath.Join(dir, "config.toml")
	body := "[buttons]\nfile = '" + buttonsPath + "'\n\n[browser]\nopen = false\n"
	if err := os.WriteFile(configPath, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return configPath, buttonsPath
}

func resetFlags() {
	jsonOut, verbose = false, false
	searchButtons = nil
	searchAll, searchPick, searchOpen, searchPrint, searchCopy = false, false, false, false, false
	validateStrict = false
	for _, name := range []string{"button", "all", "open", "print"} {
		if f := searchCmd.Flags().Lookup(name); f != nil {
			f.Changed = false
		}
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSearchDefaultButton(t *testing.T) {
	configPath, _ := setup(t, "")

	out, err := runCLI(t, "", "search", "--config", configPath, "X • Y, Z")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}

	want := buttons.Default()[0].URL +
		"?type=recording&advanced=1&query=%22X%22+AND+artist%3A%22Y%22+AND+artist%3A%22Z%22"
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("search output = %q, want %q", got, want)
	}
}

func TestSearchFromStdin(t *testing.T) {
	configPath, _ := setup(t, discogsButtons)

	out, err := runCLI(t, "Song • A, B\n", "search", "--config", configPath, "--json", "--all", "-")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}

	var results []search.Result
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	want := []search.Result{
		{Button: "Discogs", URL: "https://www.discogs.com/search?artist=A&artist=B&track=Song"},
		{Button: "RYM", URL: "https://rateyourmusic.com/search?searchtype=z&searchterm=A+Song"},
	}
	if !reflect.DeepEqual(results, want) {
		t.Errorf("results = %+v, want %+v", results, want)
	}
}

func TestSearchNamedButton(t *testing.T) {
	configPath, _ := setup(t, discogsButtons)

	out, err := runCLI(t, "", "search", "--config", configPath, "-b", "rym", "Song • A")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	if got, want := strings.TrimSpace(out), "https://rateyourmusic.com/search?searchtype=z&searchterm=A+Song"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	_, err = runCLI(t, "", "search", "--config", configPath, "-b", "Bandcamp", "Song • A")
	if !errors.Is(err, seekerrors.ErrButtonNotFound) {
		t.Errorf("unknown button error = %v, want ErrButtonNotFound", err)
	}
}

func TestSearchNoTrack(t *testing.T) {
	configPath, _ := setup(t, "")

	_, err := runCLI(t, "", "search", "--config", configPath, "NoDelimiterHere")
	if !errors.Is(err, seekerrors.ErrNoTrack) {
		t.Errorf("error = %v, want ErrNoTrack", err)
	}
	if !seekerrors.IsNotice(err) {
		t.Error("IsNotice() = false for missing track")
	}
}

func TestSearchWithoutSource(t *testing.T) {
	configPath, _ := setup(t, "")

	_, err := runCLI(t, "", "search", "--config", configPath)
	if !errors.Is(err, seekerrors.ErrNoSource) {
		t.Errorf("error = %v, want ErrNoSource", err)
	}
}

func TestButtonsValidate(t *testing.T) {
	configPath, buttonsPath := setup(t, `[{"text":"A","url":"u"},{"text":"B"}]`)

	_, err := runCLI(t, "", "buttons", "validate", "--config", configPath)
	var cerr *buttons.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("validate error = %v, want *ConfigError", err)
	}
	if got, want := cerr.Error(), `Button 2: missing or invalid "url" field`; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}

	if err := os.WriteFile(buttonsPath, []byte(discogsButtons), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "", "buttons", "validate", "--config", configPath)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, "2 button(s) valid") {
		t.Errorf("output = %q", out)
	}
}

func TestButtonsValidateStrict(t *testing.T) {
	configPath, _ := setup(t, "")
	doc := `[{"text":"A","url":"u","queryTemplate":"{title}","queryParam":"q","titleParam":"t"}]`

	out, err := runCLI(t, doc, "buttons", "validate", "--config", configPath, "-")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, "Button 1: titleParam ignored in template mode") {
		t.Errorf("output = %q, want ignored warning", out)
	}

	_, err = runCLI(t, doc, "buttons", "validate", "--config", configPath, "--strict", "-")
	if !errors.Is(err, seekerrors.ErrInvalidConfig) {
		t.Errorf("strict error = %v, want ErrInvalidConfig", err)
	}
}

func TestButtonsInitAndList(t *testing.T) {
	configPath, buttonsPath := setup(t, "")

	if _, err := runCLI(t, "", "buttons", "init", "--config", configPath); err != nil {
		t.Fatalf("init error = %v", err)
	}
	data, err := os.ReadFile(buttonsPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != buttons.DefaultDocument {
		t.Errorf("buttons file = %q, want default document", data)
	}

	out, err := runCLI(t, "", "buttons", "list", "--config", configPath, "--json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var items []map[string]any
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(items) != 1 || items[0]["text"] != "MB" || items[0]["mode"] != "template" {
		t.Errorf("items = %v", items)
	}
}

func TestParseCommand(t *testing.T) {
	configPath, _ := setup(t, "")

	out, err := runCLI(t, "", "parse", "--config", configPath, "--json", "Song • A, B")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	var got struct {
		Title   string   `json:"title"`
		Artists []string `json:"artists"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Title != "Song" || !reflect.DeepEqual(got.Artists, []string{"A", "B"}) {
		t.Errorf("parsed = %+v", got)
	}
}

func TestSelectButtons(t *testing.T) {
	list := []buttons.Button{{Text: "MB"}, {Text: "Discogs"}, {Text: "RYM"}}

	tests := []struct {
		name        string
		names       []string
		all         bool
		defaultName string
		want        []string
		wantErr     bool
	}{
		{name: "first by default", want: []string{"MB"}},
		{name: "configured default", defaultName: "rym", want: []string{"RYM"}},
		{name: "missing default", defaultName: "Bandcamp", wantErr: true},
		{name: "named in order", names: []string{"RYM", "MB"}, want: []string{"RYM", "MB"}},
		{name: "all", all: true, want: []string{"MB", "Discogs", "RYM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectButtons(list, tt.names, tt.all, tt.defaultName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("selectButtons() error = %v, wantErr %v", err, tt.wantErr)
			}
			var texts []string
			for _, b := range got {
				texts = append(texts, b.Text)
			}
			if !reflect.DeepEqual(texts, tt.want) {
				t.Errorf("selectButtons() = %v, want %v", texts, tt.want)
			}
		})
	}

	if _, err := selectButtons(nil, nil, true, ""); !errors.Is(err, seekerrors.ErrButtonNotFound) {
		t.Errorf("selectButtons(empty) error = %v, want ErrButtonNotFound", err)
	}
}

func TestDefaultFirst(t *testing.T) {
	list := []buttons.Button{{Text: "MB"}, {Text: "Discogs"}, {Text: "RYM"}}

	var texts []string
	for _, b := range defaultFirst(list, "rym") {
		texts = append(texts, b.Text)
	}
	if want := []string{"RYM", "MB", "Discogs"}; !reflect.DeepEqual(texts, want) {
		t.Errorf("defaultFirst() = %v, want %v", texts, want)
	}
	if got := defaultFirst(list, ""); !reflect.DeepEqual(got, list) {
		t.Errorf("defaultFirst(no default) = %v, want unchanged", got)
	}
}

func TestSetRawValue(t *testing.T) {
	raw := map[string]interface{}{}
	if err := setRawValue(raw, "watch.interval", "250"); err != nil {
		t.Fatalf("setRawValue() error = %v", err)
	}
	if err := setRawValue(raw, "browser.open", "no"); err != nil {
		t.Fatalf("setRawValue() error = %v", err)
	}
	if err := setRawValue(raw, "buttons.default", "Discogs"); err != nil {
		t.Fatalf("setRawValue() error = %v", err)
	}

	want := map[string]interface{}{
		"watch":   map[string]interface{}{"interval": 250},
		"browser": map[string]interface{}{"open": false},
		"buttons": map[string]interface{}{"default": "Discogs"},
	}
	if !reflect.DeepEqual(raw, want) {
		t.Errorf("raw = %v, want %v", raw, want)
	}

	if err := setRawValue(raw, "watch.interval", "soon"); err == nil {
		t.Error("setRawValue(non-integer) error = nil")
	}
	if err := setRawValue(raw, "player.device", "x"); err == nil {
		t.Error("setRawValue(unknown key) error = nil")
	}
	if err := setRawValue(raw, "nodot", "x"); err == nil {
		t.Error("setRawValue(bad key) error = nil")
	}
}

func TestConfigSetWritesFile(t *testing.T) {
	configPath, _ := setup(t, "")

	if _, err := runCLI(t, "", "config", "set", "--config", configPath, "buttons.default", "MB"); err != nil {
		t.Fatalf("config set error = %v", err)
	}
	if _, err := runCLI(t, "", "config", "show", "--config", configPath); err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if cfg.Buttons.Default != "MB" {
		t.Errorf("Buttons.Default = %q after set, want MB", cfg.Buttons.Default)
	}
	if cfg.Browser.ShouldOpen() {
		t.Error("existing browser.open = false was lost")
	}
}
