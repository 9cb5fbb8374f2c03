// Package frames enumerates the numbered still images written by frame
// extraction.
package frames

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Still is one extracted image.
type Still struct {
	Number int
	Path   string
}

// List returns every "<n><suffix>.png" file in dir ordered by n. Files with a
// different suffix, or whose stem is not an integer, are ignored, so
// List(dir, "") never returns the "12bw.png" variants.
func List(dir, suffix string) ([]Still, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	stills := make([]Still, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		stem, ok := strings.CutSuffix(name, ".png")
		if !ok {
			continue
		}
		stem, ok = strings.CutSuffix(stem, suffix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(stem)
		if err != nil || n < 0 {
			continue
		}
		stills = append(stills, Still{Number: n, Path: filepath.Join(dir, name)})
	}
	sort.Slice(stills, func(i, j int) bool { return stills[i].Number < stills[j].Number })
	return stills, nil
}

// Path returns the location of frame n with the given suffix inside dir.
func Path(dir string, n int, suffix string) string {
	return filepath.Join(dir, strconv.Itoa(n)+suffix+".png")
}
