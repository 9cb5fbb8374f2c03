package assemble

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"livesplit/internal/services"
	"livesplit/internal/setlist"
)

// MissingTitlesError reports catalog songs that detection never found.
type MissingTitlesError struct {
	Missing  []string
	Found    int
	Expected int
}

func (e *MissingTitlesError) Error() string {
	return fmt.Sprintf("detected %d of %d songs; missing: %s", e.Found, e.Expected, strings.Join(e.Missing, ", "))
}

// Is matches services.ErrDetection.
func (e *MissingTitlesError) Is(target error) bool { return target == services.ErrDetection }

// SegmentCountError reports more song segments than catalog entries.
type SegmentCountError struct {
	Segments int
	Songs    int
}

func (e *SegmentCountError) Error() string {
	return fmt.Sprintf("too many segments detected: %d segments but only %d songs provided", e.Segments, e.Songs)
}

// Is matches services.ErrDetection.
func (e *SegmentCountError) Is(target error) bool { return target == services.ErrDetection }

// CheckCoverage fails when there are fewer song segments than catalog
// titles. Missing titles are found by case-insensitive comparison with the
// titles detection attributed to each segment; untitled segments (from
// audio-only detection) account for catalog entries by position.
func CheckCoverage(segments []Segment, catalog []string) error {
	songs := Songs(segments)
	if len(songs) >= len(catalog) {
		return nil
	}

	fold := cases.Fold()
	found := make(map[string]bool, len(songs))
	untitled := 0
	for _, s := range songs {
		if strings.TrimSpace(s.Title) == "" {
			untitled++
			continue
		}
		found[fold.String(s.Title)] = true
	}

	var missing []string
	for _, title := range catalog {
		key := fold.String(title)
		if found[key] {
			delete(found, key)
			continue
		}
		if untitled > 0 {
			untitled--
			continue
		}
		missing = append(missing, title)
	}
	return &MissingTitlesError{Missing: missing, Found: len(songs), Expected: len(catalog)}
}

// CheckCount fails when there are more song segments than catalog titles.
func CheckCount(segments []Segment, catalog []string) error {
	if n := len(Songs(segments)); n > len(catalog) {
		return &SegmentCountError{Segments: n, Songs: len(catalog)}
	}
	return nil
}

// Timestamps names song segments by catalog position. Segments beyond the
// catalog are named song_N.
func Timestamps(segments []Segment, catalog []string) []setlist.SongTimestamp {
	songs := Songs(segments)
	out := make([]setlist.SongTimestamp, len(songs))
	for i, s := range songs {
		out[i] = setlist.SongTimestamp{
			Title:     TitleAt(catalog, i),
			StartTime: s.Start,
			EndTime:   s.End,
			Duration:  s.Duration(),
		}
	}
	return out
}

// TitleAt returns the catalog title for the zero-based song position.
func TitleAt(catalog []string, i int) string {
	if i < len(catalog) {
		return catalog[i]
	}
	return fmt.Sprintf("song_%d", i+1)
}
