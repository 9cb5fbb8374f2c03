package setlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"livesplit/internal/services"
)

const stage = "setlist"

// Song is one catalog entry.
type Song struct {
	Title string `json:"title" yaml:"title"`
}

// SongTimestamp is one computed song span.
type SongTimestamp struct {
	Title     string  `json:"title" yaml:"title"`
	StartTime float64 `json:"start_time" yaml:"start_time"`
	EndTime   float64 `json:"end_time" yaml:"end_time"`
	Duration  float64 `json:"duration" yaml:"duration"`
}

// SetMetaData describes the show.
type SetMetaData struct {
	Artist string `json:"artist" yaml:"artist"`
	Album  string `json:"album,omitempty" yaml:"album,omitempty"`
	Date   string `json:"date,omitempty" yaml:"date,omitempty"`
	Show   string `json:"show,omitempty" yaml:"show,omitempty"`
}

// Year returns the leading "-" separated component of Date.
func (m SetMetaData) Year() string {
	year, _, _ := strings.Cut(strings.TrimSpace(m.Date), "-")
	return year
}

// FolderName returns the album, or the artist when there is none, with
// colons rewritten so the name is safe as a directory.
func (m SetMetaData) FolderName() string {
	name := m.Album
	if strings.TrimSpace(name) == "" {
		name = m.Artist
	}
	name = strings.ReplaceAll(name, " : ", " - ")
	name = strings.ReplaceAll(name, ": ", " - ")
	return strings.ReplaceAll(name, ":", "-")
}

// SetList is a concert record.
type SetList struct {
	SetMetaData `yaml:",inline"`
	Songs       []Song          `json:"set_list" yaml:"set_list"`
	Timestamps  []SongTimestamp `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Titles returns the catalog titles in order.
func (s *SetList) Titles() []string {
	titles := make([]string, len(s.Songs))
	for i, song := range s.Songs {
		titles[i] = song.Title
	}
	return titles
}

// Load reads a setlist from path.
func Load(path string) (*SetList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, stage, "read", path, err)
	}
	var list SetList
	if isYAML(path) {
		err = yaml.Unmarshal(data, &list)
	} else {
		err = json.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, stage, "decode", filepath.Base(path), err)
	}
	if err := list.Validate(); err != nil {
		return nil, err
	}
	return &list, nil
}

// Validate checks the catalog can drive a split.
func (s *SetList) Validate() error {
	if strings.TrimSpace(s.Artist) == "" {
		return services.Wrap(services.ErrValidation, stage, "validate", "artist is required", nil)
	}
	if len(s.Songs) == 0 {
		return services.Wrap(services.ErrValidation, stage, "validate", "set_list has no songs", nil)
	}
	for i, song := range s.Songs {
		if strings.TrimSpace(song.Title) == "" {
			return services.Wrap(services.ErrValidation, stage, "validate", fmt.Sprintf("song %d has no title", i+1), nil)
		}
	}
	return nil
}

// Save writes the setlist as indented JSON.
func (s *SetList) Save(path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode setlist: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create setlist dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write setlist: %w", err)
	}
	return nil
}

// OutputName returns the file name a saved copy of a setlist read from
// path should use. YAML sources are saved as JSON.
func OutputName(path string) string {
	base := filepath.Base(path)
	if isYAML(base) {
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	}
	return base
}

type timestampFile struct {
	Songs []SongTimestamp `json:"songs" yaml:"songs"`
}

// LoadTimestamps reads a standalone {"songs": [...]} timestamps file.
func LoadTimestamps(path string) ([]SongTimestamp, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, stage, "read timestamps", path, err)
	}
	var file timestampFile
	if isYAML(path) {
		err = yaml.Unmarshal(data, &file)
	} else {
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, stage, "decode timestamps", filepath.Base(path), err)
	}
	if len(file.Songs) == 0 {
		return nil, services.Wrap(services.ErrValidation, stage, "decode timestamps", "timestamps file has no songs", nil)
	}
	return file.Songs, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
