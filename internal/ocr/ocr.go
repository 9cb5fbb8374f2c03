package ocr

import (
	"context"
	"strings"

	"livesplit/internal/titlematch"
)

// PSMDefault leaves page segmentation to the engine.
const PSMDefault = -1

// Engine recognizes the text in an image using a page segmentation mode.
// An image without text yields an empty string and a nil error.
type Engine interface {
	Recognize(ctx context.Context, imagePath string, psm int) (string, error)
}

// Result is one usable recognition.
type Result struct {
	Lines   []string
	Overlay bool
}

// minTextLength is the shortest trimmed output worth matching.
const minTextLength = 4

// Parse splits recognized text into trimmed non-empty lines and flags the
// result as an overlay when the first line looks like the artist name.
// Output too short to hold a title is reported as unusable.
func Parse(text, artist string) (Result, bool) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minTextLength {
		return Result{}, false
	}
	raw := strings.Split(trimmed, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Result{}, false
	}
	return Result{
		Lines:   lines,
		Overlay: titlematch.IsArtistOverlay(lines[0], artist),
	}, true
}

// Read recognizes imagePath with engine and parses the output.
func Read(ctx context.Context, engine Engine, imagePath string, psm int, artist string) (Result, bool, error) {
	text, err := engine.Recognize(ctx, imagePath, psm)
	if err != nil {
		return Result{}, false, err
	}
	result, ok := Parse(text, artist)
	return result, ok, nil
}

// FirstUsable tries each mode in order and returns the first usable parse.
func FirstUsable(ctx context.Context, engine Engine, imagePath string, psms []int, artist string) (Result, int, bool, error) {
	for _, psm := range psms {
		result, ok, err := Read(ctx, engine, imagePath, psm, artist)
		if err != nil {
			return Result{}, psm, false, err
		}
		if ok {
			return result, psm, true, nil
		}
	}
	return Result{}, 0, false, nil
}
