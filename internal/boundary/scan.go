package boundary

// scanState is the backward frame walk's progress.
type scanState int

const (
	scanSearching scanState = iota
	scanFound
	scanStopped
)

// backwardScan tracks the earliest matching frame while frames are fed from
// latest to earliest. The walk stops at the first miss after a match; misses
// before any match keep it searching.
type backwardScan struct {
	state    scanState
	earliest int
}

// observe records whether frame n matched and reports whether the walk
// should continue.
func (s *backwardScan) observe(n int, matched bool) bool {
	switch s.state {
	case scanSearching:
		if matched {
			s.state = scanFound
			s.earliest = n
		}
		return true
	case scanFound:
		if !matched {
			s.state = scanStopped
			return false
		}
		if n < s.earliest {
			s.earliest = n
		}
		return true
	default:
		return false
	}
}

// result returns the earliest matching frame, if any frame matched.
func (s *backwardScan) result() (int, bool) {
	if s.state == scanSearching {
		return 0, false
	}
	return s.earliest, true
}
