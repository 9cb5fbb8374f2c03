package titlematch

import (
	"fmt"
	"strings"

	"livesplit/internal/textutil"
)

// Reason records which rule accepted a match.
type Reason int

const (
	ReasonContains Reason = iota
	ReasonEditDistance
	ReasonStartsWith
)

func (r Reason) String() string {
	switch r {
	case ReasonContains:
		return "contains"
	case ReasonEditDistance:
		return "edit_distance"
	case ReasonStartsWith:
		return "starts_with"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Outcome describes an accepted match. Lower scores are better; containment
// always scores 0.
type Outcome struct {
	Title  string
	Reason Reason
	Line   string
	Score  int
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s(%d) %q", o.Reason, o.Score, o.Line)
}

const (
	truncateMinLine  = 10
	truncateMinTitle = 12
	truncateSlack    = 2
	overlayBonus     = 2
	ceilingMargin    = 10
	minPrefixRatio   = 0.4
)

// MatchTitle reports whether title appears in the recognized lines. Titles of
// the form "Movement <n>: <rest>" are also tried as <rest> alone.
func MatchTitle(lines []string, title string, overlay bool, w textutil.Weights) (Outcome, bool) {
	variants := []string{title}
	if stripped, ok := StripMovementPrefix(title); ok {
		variants = append(variants, stripped)
	}
	candidates := candidateLines(lines)
	for _, variant := range variants {
		normalizedTitle := textutil.Normalize(variant)
		if normalizedTitle == "" {
			continue
		}
		for _, line := range candidates {
			if outcome, ok := matchLine(line, normalizedTitle, overlay, w); ok {
				outcome.Title = title
				return outcome, true
			}
		}
	}
	return Outcome{}, false
}

// BestMatch runs MatchTitle for every title and returns the lowest-scoring
// outcome together with every accepted outcome. Ties keep the earlier title.
func BestMatch(lines []string, titles []string, overlay bool, w textutil.Weights) (Outcome, []Outcome, bool) {
	var (
		best    Outcome
		found   bool
		matches []Outcome
	)
	for _, title := range titles {
		outcome, ok := MatchTitle(lines, title, overlay, w)
		if !ok {
			continue
		}
		matches = append(matches, outcome)
		if !found || outcome.Score < best.Score {
			best = outcome
			found = true
		}
	}
	return best, matches, found
}

// candidateLines yields each line followed by each adjacent pair joined with
// a space, so titles that wrap onto a second line can still be contained.
func candidateLines(lines []string) []string {
	out := make([]string, 0, 2*len(lines))
	out = append(out, lines...)
	for i := 0; i+1 < len(lines); i++ {
		out = append(out, lines[i]+" "+lines[i+1])
	}
	return out
}

func matchLine(line, normalizedTitle string, overlay bool, w textutil.Weights) (Outcome, bool) {
	normalizedLine := textutil.Normalize(line)
	if normalizedLine == "" {
		return Outcome{}, false
	}
	if strings.Contains(normalizedLine, normalizedTitle) {
		return Outcome{Reason: ReasonContains, Line: line, Score: 0}, true
	}

	lineRunes := []rune(normalizedLine)
	titleRunes := []rune(normalizedTitle)
	titleCount := len(titleRunes)

	// Long titles are compared only against the part the camera showed.
	if len(lineRunes) > truncateMinLine && titleCount > truncateMinTitle {
		titleRunes = titleRunes[:min(len(lineRunes)+truncateSlack, titleCount)]
	}
	compared := string(titleRunes)

	limit := len(lineRunes) / 3
	if overlay {
		limit += overlayBonus
	}
	ceiling := limit + ceilingMargin + titleCount
	if dist := textutil.Distance(compared, normalizedLine, ceiling, w); dist <= limit {
		return Outcome{Reason: ReasonEditDistance, Line: line, Score: dist}, true
	}

	if strings.HasPrefix(compared, normalizedLine) &&
		float64(len(lineRunes))/float64(len(titleRunes)) >= minPrefixRatio {
		return Outcome{Reason: ReasonStartsWith, Line: line, Score: len(titleRunes) - len(lineRunes)}, true
	}
	return Outcome{}, false
}
