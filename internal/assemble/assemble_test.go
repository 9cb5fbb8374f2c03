package assemble

import (
	"errors"
	"slices"
	"testing"

	"livesplit/internal/services"
	"livesplit/internal/setlist"
)

func TestBuildTwoSongs(t *testing.T) {
	segments := Build([]Boundary{
		{Title: "Song B", Time: 40, Overlay: true},
		{Title: "Song A", Time: 5, Overlay: true},
	}, 300)
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	want := []Segment{
		{Title: "Song A", Start: 0, End: 40, IsSong: true},
		{Title: "Song B", Start: 40, End: 300, IsSong: true},
	}
	if !slices.Equal(segments, want) {
		t.Fatalf("segments = %+v, want %+v", segments, want)
	}
	if !Contiguous(segments, 300) {
		t.Fatal("expected contiguous segments")
	}

	stamps := Timestamps(segments, []string{"Song A", "Song B"})
	if stamps[0] != (setlist.SongTimestamp{Title: "Song A", StartTime: 0, EndTime: 40, Duration: 40}) {
		t.Fatalf("first timestamp = %+v", stamps[0])
	}
	if stamps[1].EndTime != 300 || stamps[1].Duration != 260 {
		t.Fatalf("second timestamp = %+v", stamps[1])
	}
}

func TestBuildContiguousForAnyOrder(t *testing.T) {
	boundaries := []Boundary{{Time: 200}, {Time: 12}, {Time: 90}, {Time: 500}, {Time: 150}}
	segments := Build(boundaries, 400)
	if len(segments) != 4 {
		t.Fatalf("boundary past the end should be dropped, got %d segments", len(segments))
	}
	if !Contiguous(segments, 400) {
		t.Fatalf("segments not contiguous: %+v", segments)
	}
	if Build(nil, 400) != nil {
		t.Fatal("no boundaries should produce no segments")
	}
}

func TestTimestampsNamesByPosition(t *testing.T) {
	segments := Build([]Boundary{{Title: "Song B", Time: 0}, {Title: "Song A", Time: 30}}, 60)
	stamps := Timestamps(segments, []string{"Song A"})
	if stamps[0].Title != "Song A" {
		t.Fatalf("first title = %q, detector attribution must not name songs", stamps[0].Title)
	}
	if stamps[1].Title != "song_2" {
		t.Fatalf("overflow title = %q", stamps[1].Title)
	}
}

func TestCheckCoverageNamesMissingTitle(t *testing.T) {
	catalog := []string{"Song A", "Song B", "Song C"}
	segments := Build([]Boundary{{Title: "song a", Time: 5}, {Title: "SONG C", Time: 80}}, 200)
	err := CheckCoverage(segments, catalog)
	if !errors.Is(err, services.ErrDetection) {
		t.Fatalf("expected detection error, got %v", err)
	}
	var missing *MissingTitlesError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTitlesError, got %T", err)
	}
	if !slices.Equal(missing.Missing, []string{"Song B"}) {
		t.Fatalf("missing = %v", missing.Missing)
	}
	if missing.Found != 2 || missing.Expected != 3 {
		t.Fatalf("counts = %d/%d", missing.Found, missing.Expected)
	}
}

func TestCheckCoverageUntitled(t *testing.T) {
	catalog := []string{"Song A", "Song B", "Song C"}
	segments := FromStarts([]float64{0, 50}, 120)
	var missing *MissingTitlesError
	if err := CheckCoverage(segments, catalog); !errors.As(err, &missing) {
		t.Fatalf("expected MissingTitlesError, got %v", err)
	}
	if !slices.Equal(missing.Missing, []string{"Song C"}) {
		t.Fatalf("missing = %v", missing.Missing)
	}
	if err := CheckCoverage(FromStarts([]float64{0, 40, 80}, 120), catalog); err != nil {
		t.Fatalf("full coverage: %v", err)
	}
}

func TestCheckCount(t *testing.T) {
	segments := FromStarts([]float64{0, 10, 20}, 30)
	err := CheckCount(segments, []string{"A", "B"})
	var count *SegmentCountError
	if !errors.As(err, &count) || count.Segments != 3 || count.Songs != 2 {
		t.Fatalf("expected SegmentCountError 3/2, got %v", err)
	}
	if !errors.Is(err, services.ErrDetection) {
		t.Fatal("SegmentCountError should match ErrDetection")
	}

	withGap := EndSongsAt(FromStarts([]float64{0, 10}, 30), 25, 30)
	if err := CheckCount(withGap, []string{"A", "B"}); err != nil {
		t.Fatalf("gaps must not count as songs: %v", err)
	}
}

func TestEndSongsAt(t *testing.T) {
	segments := FromStarts([]float64{0, 100}, 300)
	got := EndSongsAt(segments, 280, 300)
	if len(got) != 3 {
		t.Fatalf("got %d segments, want 3", len(got))
	}
	if got[1].End != 280 || got[2].IsSong || got[2].Start != 280 || got[2].End != 300 {
		t.Fatalf("unexpected tail %+v", got)
	}
	if !Contiguous(got, 300) {
		t.Fatal("gap must keep the sequence contiguous")
	}
	if len(segments) != 2 || segments[1].End != 300 {
		t.Fatal("input slice must not be modified")
	}

	if same := EndSongsAt(segments, 50, 300); len(same) != 2 {
		t.Fatal("end before the last song start is ignored")
	}
}
