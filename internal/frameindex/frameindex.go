// Package frameindex models the packet timeline of a media file and answers
// keyframe-relative lookups used to place stream-copy cut points.
package frameindex

import "sort"

// Record is one decoded frame of the primary video stream.
type Record struct {
	Timestamp float64
	Keyframe  bool
}

// Index holds every frame in presentation order plus the positions of the
// keyframes among them. It is read-only once built.
type Index struct {
	frames    []Record
	keyframes []int
}

// New builds an index from records already ordered by timestamp.
func New(records []Record) *Index {
	frames := make([]Record, len(records))
	copy(frames, records)
	keyframes := make([]int, 0, len(frames)/12+1)
	for i, f := range frames {
		if f.Keyframe {
			keyframes = append(keyframes, i)
		}
	}
	return &Index{frames: frames, keyframes: keyframes}
}

// Len returns the number of frames.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.frames)
}

// KeyframeCount returns the number of keyframes.
func (ix *Index) KeyframeCount() int {
	if ix == nil {
		return 0
	}
	return len(ix.keyframes)
}

// Frame returns the frame at position i.
func (ix *Index) Frame(i int) Record { return ix.frames[i] }

// Nearest describes the frames surrounding a query time. Positions are valid
// only when the matching Has flag is set.
type Nearest struct {
	// PrevKeyframe is the last keyframe strictly before the query time, or 0.
	PrevKeyframe int
	// LastBefore is the last frame strictly before the query time inside the
	// window that starts at PrevKeyframe.
	LastBefore int

	Frame    int
	HasFrame bool

	Keyframe    int
	HasKeyframe bool
}

// NearestByTime locates the first keyframe at or after t and, inside the
// window that precedes it, the first frame at or after t. Lookups snap
// forward so a cut made at the result never lands before t.
func (ix *Index) NearestByTime(t float64) Nearest {
	var out Nearest
	k := sort.Search(len(ix.keyframes), func(i int) bool {
		return ix.frames[ix.keyframes[i]].Timestamp >= t
	})
	if k > 0 {
		out.PrevKeyframe = ix.keyframes[k-1]
	}
	end := len(ix.frames) - 1
	if k < len(ix.keyframes) {
		out.Keyframe = ix.keyframes[k]
		out.HasKeyframe = true
		end = out.Keyframe
	}

	out.LastBefore = out.PrevKeyframe
	for i := out.PrevKeyframe; i <= end && i < len(ix.frames); i++ {
		if ix.frames[i].Timestamp >= t {
			out.Frame = i
			out.HasFrame = true
			break
		}
		out.LastBefore = i
	}
	return out
}

// FrameAtOrAfter returns the position of the first frame whose timestamp is
// at or after t.
func (ix *Index) FrameAtOrAfter(t float64) (int, bool) {
	n := ix.NearestByTime(t)
	return n.Frame, n.HasFrame
}

// KeyframeAtOrBefore returns the position of the latest keyframe whose
// timestamp does not exceed t.
func (ix *Index) KeyframeAtOrBefore(t float64) (int, bool) {
	k := sort.Search(len(ix.keyframes), func(i int) bool {
		return ix.frames[ix.keyframes[i]].Timestamp > t
	})
	if k == 0 {
		return 0, false
	}
	return ix.keyframes[k-1], true
}
