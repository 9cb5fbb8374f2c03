package textutil

// Weights holds per-operation costs for Distance.
type Weights struct {
	Insert     int
	Delete     int
	Substitute int
}

var (
	// Stingy favors substitutions and penalizes length mismatch.
	Stingy = Weights{Insert: 2, Delete: 2, Substitute: 1}
	// Greedy makes dropping characters cheap, which tolerates OCR lines that
	// lost the start or end of a fading title.
	Greedy = Weights{Insert: 2, Delete: 1, Substitute: 2}
	// Unit is the classic Levenshtein distance.
	Unit = Weights{Insert: 1, Delete: 1, Substitute: 1}
)

// Distance returns the cheapest cost of turning from into to, where deleting
// consumes a rune of from and inserting produces a rune of to.
//
// The search stops once every alignment of a prefix of from already costs more
// than ceiling; in that case a value greater than ceiling is returned. Callers
// must keep the ceiling above the acceptance threshold they compare against.
func Distance(from, to string, ceiling int, w Weights) int {
	a := []rune(from)
	b := []rune(to)

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j * w.Insert
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i * w.Delete
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := prev[j-1]
			if a[i-1] != b[j-1] {
				cost += w.Substitute
			}
			if del := prev[j] + w.Delete; del < cost {
				cost = del
			}
			if ins := curr[j-1] + w.Insert; ins < cost {
				cost = ins
			}
			curr[j] = cost
			if cost < rowMin {
				rowMin = cost
			}
		}
		if rowMin > ceiling {
			return ceiling + 1
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Preset returns the named weight preset: "stingy", "greedy" or "unit".
func Preset(name string) (Weights, bool) {
	switch name {
	case "stingy":
		return Stingy, true
	case "greedy":
		return Greedy, true
	case "unit":
		return Unit, true
	}
	return Weights{}, false
}
