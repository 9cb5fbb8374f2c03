package titlematch

import (
	"testing"

	"livesplit/internal/textutil"
)

func matchDefault(lines []string, title string, overlay bool) (Outcome, bool) {
	return MatchTitle(lines, title, overlay, textutil.Stingy)
}

func TestMatchTitleGreedyTruncatedLine(t *testing.T) {
	if _, ok := MatchTitle([]string{"__ My Everythi"}, "My Everything", false, textutil.Greedy); !ok {
		t.Fatal("expected greedy weights to accept a truncated line")
	}
}

func TestMatchTitleBasic(t *testing.T) {
	lines := []string{"hello world", "test song"}
	tests := []struct {
		name    string
		title   string
		overlay bool
		want    bool
	}{
		{"exact", "test song", false, true},
		{"partial start", "test", false, true},
		{"partial end", "song", false, true},
		{"case", "TEST SONG", false, true},
		{"overlay spanning lines", "hello world test", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := matchDefault(lines, tt.title, tt.overlay); ok != tt.want {
				t.Fatalf("MatchTitle(%q) = %v, want %v", tt.title, ok, tt.want)
			}
		})
	}
	if _, ok := matchDefault([]string{"completely different"}, "test song", true); ok {
		t.Fatal("expected unrelated line not to match")
	}
}

func TestMatchTitleExactIsContainment(t *testing.T) {
	outcome, ok := matchDefault([]string{"Song A"}, "song a", false)
	if !ok {
		t.Fatal("expected match")
	}
	if outcome.Reason != ReasonContains || outcome.Score != 0 {
		t.Fatalf("expected containment with score 0, got %v", outcome)
	}
	if outcome.Title != "song a" || outcome.Line != "Song A" {
		t.Fatalf("unexpected title/line %q/%q", outcome.Title, outcome.Line)
	}
}

func TestMatchTitleOverlayLoosensThreshold(t *testing.T) {
	lines := []string{"helo wrld"}
	if _, ok := matchDefault(lines, "hello world", false); ok {
		t.Fatal("expected no match without overlay")
	}
	outcome, ok := matchDefault(lines, "hello world", true)
	if !ok {
		t.Fatal("expected match with overlay")
	}
	if outcome.Reason != ReasonEditDistance || outcome.Score != 4 {
		t.Fatalf("expected edit distance 4, got %v", outcome)
	}
}

func TestMatchTitleNoisyOverlays(t *testing.T) {
	tests := []struct {
		line  string
		title string
		want  bool
	}{
		{"-THUSIIS WHY (IDON'TSPRING", "..THUS IS WHY ( I DON'T SPRING 4 LOVE )", true},
		{"IsTHERE'S NO SEATII", "IF THERE'S NO SEAT IN THE SKY (WILL YOU FORGIVE ME???)", true},
		{"ummer Depres", "Summer Depression", true},
		{"© Quarto (Fado Pager", "O Quarto (fado Pagem)", true},
		{"//", "too much", false},
		{"seenaneiias Thibaudcn™", "heitor villa-lobos: \"o polichinelo\" (from a prole do bebê no. 1)", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			outcome, ok := matchDefault([]string{tt.line}, tt.title, true)
			if ok != tt.want {
				t.Fatalf("MatchTitle(%q, %q) = %v (%v), want %v", tt.line, tt.title, ok, outcome, tt.want)
			}
		})
	}
}

func TestMatchTitlePrefixFallback(t *testing.T) {
	outcome, ok := matchDefault([]string{"Summer Dep"}, "Summer Depression", false)
	if !ok {
		t.Fatal("expected prefix match")
	}
	if outcome.Reason != ReasonStartsWith || outcome.Score != 7 {
		t.Fatalf("expected starts_with scoring 7, got %v", outcome)
	}
	if _, ok := matchDefault([]string{"Sum"}, "Summer Depression", false); ok {
		t.Fatal("expected a prefix under 40% of the title to be rejected")
	}
}

func TestMatchTitleMovementPrefix(t *testing.T) {
	outcome, ok := matchDefault([]string{"Omnyama"}, `Movement Two: "Omnyama"`, false)
	if !ok {
		t.Fatal("expected movement title to match its stripped name")
	}
	if outcome.Title != `Movement Two: "Omnyama"` {
		t.Fatalf("expected outcome to carry the catalog title, got %q", outcome.Title)
	}
}

func TestMatchTitleEmptyInputs(t *testing.T) {
	if _, ok := matchDefault(nil, "Song", true); ok {
		t.Fatal("expected no match for no lines")
	}
	if _, ok := matchDefault([]string{"Song"}, "!!!", true); ok {
		t.Fatal("expected no match for a title without letters")
	}
}

func TestMatchTitleDeterministic(t *testing.T) {
	lines := []string{"IsTHERE'S NO SEATII"}
	title := "IF THERE'S NO SEAT IN THE SKY (WILL YOU FORGIVE ME???)"
	first, _ := matchDefault(lines, title, true)
	for i := 0; i < 3; i++ {
		if got, _ := matchDefault(lines, title, true); got != first {
			t.Fatalf("outcome changed between calls: %v then %v", first, got)
		}
	}
}

func TestBestMatchPrefersLowestScore(t *testing.T) {
	best, all, ok := BestMatch([]string{"Summer Dep"}, []string{"Summer Depression", "Summer Dew"}, false, textutil.Stingy)
	if !ok {
		t.Fatal("expected a match")
	}
	if len(all) != 2 {
		t.Fatalf("expected both titles to match, got %d", len(all))
	}
	if best.Title != "Summer Dew" || best.Score != 1 {
		t.Fatalf("expected Summer Dew with score 1, got %v (%s)", best, best.Title)
	}
}

func TestBestMatchTieKeepsEarlierTitle(t *testing.T) {
	best, _, ok := BestMatch([]string{"test song"}, []string{"test song", "song"}, false, textutil.Stingy)
	if !ok {
		t.Fatal("expected a match")
	}
	if best.Title != "test song" {
		t.Fatalf("expected earlier title to win a tie, got %q", best.Title)
	}
}

func TestStripMovementPrefix(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		strips bool
	}{
		{`Movement Two: "Omnyama"`, "Omnyama", true},
		{"movement nine: Finale", "Finale", true},
		{"Movement Ten: Nope", "Movement Ten: Nope", false},
		{"Omnyama", "Omnyama", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := StripMovementPrefix(tt.in)
			if got != tt.want || ok != tt.strips {
				t.Fatalf("StripMovementPrefix(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.strips)
			}
		})
	}
}
