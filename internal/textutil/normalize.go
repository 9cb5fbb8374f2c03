package textutil

import (
	"strings"
	"unicode"
)

// Normalize keeps only letters and digits and lowercases the result, so
// punctuation, spacing and case never influence a comparison.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
