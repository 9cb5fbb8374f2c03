package titlematch

import (
	"regexp"
	"strings"
)

var movementPrefix = regexp.MustCompile(`(?i)^\s*movement\s+(one|two|three|four|five|six|seven|eight|nine)\s*:\s*`)

// StripMovementPrefix removes a leading "Movement <one..nine>:" label and a
// single pair of surrounding quotes from what remains.
func StripMovementPrefix(title string) (string, bool) {
	loc := movementPrefix.FindStringIndex(title)
	if loc == nil {
		return title, false
	}
	rest := strings.TrimSpace(title[loc[1]:])
	rest = trimOneQuote(rest)
	if rest == "" {
		return title, false
	}
	return rest, true
}

func trimOneQuote(s string) string {
	const quotes = `"'“”‘’`
	for _, q := range quotes {
		if strings.HasPrefix(s, string(q)) {
			s = s[len(string(q)):]
			break
		}
	}
	for _, q := range quotes {
		if strings.HasSuffix(s, string(q)) {
			s = s[:len(s)-len(string(q))]
			break
		}
	}
	return strings.TrimSpace(s)
}
