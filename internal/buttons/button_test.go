package buttons

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestButtonMarshalRoundTrip(t *testing.T) {
	raw := `[
		{"text":"MB","url":"https://musicbrainz.org/search","queryTemplate":"{title}","queryParam":"query","artistsJoin":""},
		{"text":"Discogs","url":"https://www.discogs.com/search","artistsParam":"artist","artistsMode":"join","artistsSeparator":"","extraParams":{"b":"1","a":"2"}}
	]`
	list, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	out, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	again, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse(marshaled) error = %v\n%s", err, out)
	}
	if !reflect.DeepEqual(list, again) {
		t.Errorf("round trip = %+v, want %+v", again, list)
	}
}

func TestParamsMarshalOrder(t *testing.T) {
	p := Params{{"type", "recording"}, {"advanced", "1"}}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"type":"recording","advanced":"1"}`; string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}

func TestFind(t *testing.T) {
	list := []Button{{Text: "MB"}, {Text: "Discogs"}}

	b, ok := Find(list, "discogs")
	if !ok || b.Text != "Discogs" {
		t.Errorf("Find(discogs) = %q, %v", b.Text, ok)
	}
	if _, ok := Find(list, "RYM"); ok {
		t.Error("Find(RYM) found a button")
	}
}
