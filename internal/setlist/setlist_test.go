package setlist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"livesplit/internal/services"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "show.json", `{
  "artist": "John Doe",
  "album": "Live: At The Hall",
  "date": "2024-05-01",
  "set_list": [{"title": "Song A"}, {"title": "Song B"}]
}`)
	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Artist != "John Doe" || len(list.Songs) != 2 {
		t.Fatalf("unexpected setlist %+v", list)
	}
	if list.Year() != "2024" {
		t.Fatalf("Year() = %q", list.Year())
	}
	if list.FolderName() != "Live - At The Hall" {
		t.Fatalf("FolderName() = %q", list.FolderName())
	}
	if got := list.Titles(); got[0] != "Song A" || got[1] != "Song B" {
		t.Fatalf("Titles() = %v", got)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "show.yml", `artist: John Doe
show: Night One
set_list:
  - title: Song A
timestamps:
  - title: Song A
    start_time: 0
    end_time: 61.5
    duration: 61.5
`)
	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Show != "Night One" {
		t.Fatalf("show = %q", list.Show)
	}
	if len(list.Timestamps) != 1 || list.Timestamps[0].EndTime != 61.5 {
		t.Fatalf("timestamps = %+v", list.Timestamps)
	}
	if list.FolderName() != "John Doe" {
		t.Fatalf("FolderName() = %q", list.FolderName())
	}
}

func TestLoadRejectsIncompleteSetlists(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"noartist.json": `{"set_list": [{"title": "A"}]}`,
		"nosongs.json":  `{"artist": "X", "set_list": []}`,
		"blank.json":    `{"artist": "X", "set_list": [{"title": " "}]}`,
		"broken.json":   `{"artist": `,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, name, body))
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSaveFlattensMetadata(t *testing.T) {
	list := &SetList{
		SetMetaData: SetMetaData{Artist: "John Doe", Date: "2024"},
		Songs:       []Song{{Title: "Song A"}},
		Timestamps:  []SongTimestamp{{Title: "Song A", StartTime: 0, EndTime: 10, Duration: 10}},
	}
	path := filepath.Join(t.TempDir(), "out", "show.json")
	if err := list.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"artist", "date", "set_list", "timestamps"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("expected top-level %q in %s", key, data)
		}
	}
	if _, ok := raw["album"]; ok {
		t.Fatalf("empty album should be omitted: %s", data)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Timestamps) != 1 {
		t.Fatalf("timestamps lost on reload")
	}
}

func TestLoadTimestamps(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "ts.json", `{"songs": [{"title": "Song A", "start_time": 0, "end_time": 40, "duration": 40}]}`)
	songs, err := LoadTimestamps(good)
	if err != nil {
		t.Fatalf("LoadTimestamps: %v", err)
	}
	if len(songs) != 1 || songs[0].EndTime != 40 {
		t.Fatalf("songs = %+v", songs)
	}

	empty := writeFile(t, dir, "empty.json", `{"songs": []}`)
	if _, err := LoadTimestamps(empty); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty file, got %v", err)
	}
}

func TestOutputName(t *testing.T) {
	if got := OutputName("/a/b/show.yaml"); got != "show.json" {
		t.Fatalf("OutputName(yaml) = %q", got)
	}
	if got := OutputName("show.json"); got != "show.json" {
		t.Fatalf("OutputName(json) = %q", got)
	}
}

func TestFolderNameColons(t *testing.T) {
	tests := map[string]string{
		"A : B": "A - B",
		"A: B":  "A - B",
		"A:B":   "A-B",
	}
	for in, want := range tests {
		if got := (SetMetaData{Album: in}).FolderName(); got != want {
			t.Errorf("FolderName(%q) = %q, want %q", in, got, want)
		}
	}
}
