package titlematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"livesplit/internal/textutil"
)

const (
	artistPrefixRatio  = 0.7
	artistPrefixMinLen = 16
	artistMaxEdits     = 1
)

// IsArtistOverlay reports whether the first OCR line of a frame is the artist
// name, which marks the frame as a broadcast title card.
func IsArtistOverlay(line, artist string) bool {
	l := foldArtist(line)
	a := foldArtist(artist)
	if l == "" || a == "" {
		return false
	}

	// OCR may append characters after the name.
	if strings.HasPrefix(l, a) {
		return true
	}

	lr := []rune(l)
	ar := []rune(a)

	// OCR may drop the last few characters.
	if strings.HasPrefix(a, l) {
		ratio := float64(len(lr)) / float64(len(ar))
		if ratio >= artistPrefixRatio || len(lr) > artistPrefixMinLen {
			return true
		}
	}

	// OCR may garble the last few characters.
	split := len(ar) * 7 / 10
	if split > 0 && len(lr) > split && strings.HasPrefix(a, string(lr[:split])) {
		return true
	}

	ceiling := artistMaxEdits + 1
	if textutil.Distance(l, a, ceiling, textutil.Unit) <= artistMaxEdits {
		return true
	}
	if len(lr) > len(ar) && textutil.Distance(string(lr[:len(ar)]), a, ceiling, textutil.Unit) <= artistMaxEdits {
		return true
	}
	return false
}

// foldArtist drops whitespace, strips diacritics, discards anything still
// outside ASCII and lowercases the result.
func foldArtist(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII || unicode.IsSpace(r) })),
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
