package assemble

import (
	"sort"

	"livesplit/internal/setlist"
)

// Boundary is a confirmed song start.
type Boundary struct {
	Title   string
	Time    float64
	Overlay bool
}

// Segment is a span of the recording. Gap segments carry no title.
type Segment struct {
	Title  string
	Start  float64
	End    float64
	IsSong bool
}

// Duration returns End - Start.
func (s Segment) Duration() float64 { return s.End - s.Start }

// Build orders boundaries by time and produces one song segment per start.
// The first segment always begins at 0 and the last ends at duration;
// boundaries at or past duration are dropped.
func Build(boundaries []Boundary, duration float64) []Segment {
	ordered := make([]Boundary, 0, len(boundaries))
	for _, b := range boundaries {
		if b.Time < duration {
			ordered = append(ordered, b)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Time < ordered[j].Time })
	if len(ordered) == 0 {
		return nil
	}

	segments := make([]Segment, len(ordered))
	for i, b := range ordered {
		segments[i] = Segment{Title: b.Title, Start: b.Time, IsSong: true}
		if i > 0 {
			segments[i-1].End = b.Time
		}
	}
	segments[0].Start = 0
	segments[len(segments)-1].End = duration
	return segments
}

// FromStarts builds untitled song segments from start times.
func FromStarts(starts []float64, duration float64) []Segment {
	boundaries := make([]Boundary, len(starts))
	for i, s := range starts {
		boundaries[i] = Boundary{Time: s}
	}
	return Build(boundaries, duration)
}

// FromTimestamps rebuilds segments from cached song timestamps in the
// order given.
func FromTimestamps(ts []setlist.SongTimestamp) []Segment {
	segments := make([]Segment, len(ts))
	for i, t := range ts {
		segments[i] = Segment{Title: t.Title, Start: t.StartTime, End: t.EndTime, IsSong: true}
	}
	return segments
}

// Songs returns only the song segments.
func Songs(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if s.IsSong {
			out = append(out, s)
		}
	}
	return out
}

// EndSongsAt moves the end of the last song to end and appends a gap
// covering the remainder up to duration. It is a no-op when end does not
// fall strictly inside the last song.
func EndSongsAt(segments []Segment, end, duration float64) []Segment {
	last := -1
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i].IsSong {
			last = i
			break
		}
	}
	if last < 0 || end <= segments[last].Start || end >= segments[last].End {
		return segments
	}
	out := make([]Segment, 0, len(segments)+1)
	out = append(out, segments[:last+1]...)
	out[last].End = end
	tailEnd := duration
	if last+1 < len(segments) {
		tailEnd = segments[last+1].Start
	}
	out = append(out, Segment{Start: end, End: tailEnd})
	if last+1 < len(segments) {
		out = append(out, segments[last+1:]...)
	}
	return out
}

// Contiguous reports whether segments tile [0, duration] without gaps or
// overlaps.
func Contiguous(segments []Segment, duration float64) bool {
	if len(segments) == 0 {
		return false
	}
	if segments[0].Start != 0 || segments[len(segments)-1].End != duration {
		return false
	}
	for i := 0; i < len(segments); i++ {
		if segments[i].Start >= segments[i].End {
			return false
		}
		if i > 0 && segments[i-1].End != segments[i].Start {
			return false
		}
	}
	return true
}
