package boundary

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"livesplit/internal/assemble"
	"livesplit/internal/audio"
	"livesplit/internal/config"
	"livesplit/internal/frameindex"
	"livesplit/internal/imaging"
	"livesplit/internal/logging"
)

// engineFunc answers OCR requests from the frame number in the file name.
type engineFunc func(n int, variant bool, psm int) string

func (f engineFunc) Recognize(_ context.Context, path string, psm int) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(path), ".png")
	variant := strings.HasSuffix(stem, "bw")
	n, err := strconv.Atoi(strings.TrimSuffix(stem, "bw"))
	if err != nil {
		return "", fmt.Errorf("unexpected frame path %q", path)
	}
	return f(n, variant, psm), nil
}

func touchFrames(t *testing.T, dir string, numbers ...int) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, n := range numbers {
		if err := os.WriteFile(filepath.Join(dir, strconv.Itoa(n)+".png"), []byte("frame"), 0o644); err != nil {
			t.Fatalf("write frame: %v", err)
		}
	}
}

func copyContrast(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

type recordingImages struct {
	records []string
}

func (r *recordingImages) Record(stage, title string, frame int, _ string) error {
	r.records = append(r.records, fmt.Sprintf("%s:%s:%d", stage, title, frame))
	return nil
}

func TestTextPassTwoSongs(t *testing.T) {
	dir := t.TempDir()
	touchFrames(t, dir, seq(1, 90)...)

	engine := engineFunc(func(n int, _ bool, _ int) string {
		switch {
		case n == 2:
			return "Song B"
		case n >= 5 && n <= 9:
			return "John Doe\nSong A"
		case n >= 20 && n <= 25:
			return "John Doe\nSong B"
		case n >= 40 && n <= 44:
			return "John Doe\nSong B"
		}
		return ""
	})
	images := &recordingImages{}
	pass := &TextPass{
		Config:   config.DefaultAnalysis(),
		Engine:   engine,
		Artist:   "John Doe",
		Logger:   logging.NewNop(),
		Images:   images,
		Contrast: copyContrast,
	}
	found, err := pass.Detect(context.Background(), dir, []string{"Song A", "Song B"})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("found %d boundaries, want 2: %+v", len(found), found)
	}
	if found[0].Title != "Song A" || found[0].Time != 5 {
		t.Fatalf("first boundary = %+v", found[0])
	}
	if found[1].Title != "Song B" || found[1].Time != 40 {
		t.Fatalf("second boundary = %+v, frames within the minimum song length must be skipped", found[1])
	}
	if len(images.records) != 2 || images.records[0] != "initial:Song A:5" {
		t.Fatalf("images = %v", images.records)
	}

	segments := assemble.Build(found, 120)
	if segments[0].Start != 0 || segments[0].End != 40 || segments[1].Start != 40 || segments[1].End != 120 {
		t.Fatalf("segments = %+v", segments)
	}
}

func TestTextPassUsesContrastVariantAndFirstUsablePSM(t *testing.T) {
	dir := t.TempDir()
	touchFrames(t, dir, 1, 2, 3)
	var calls []string
	engine := engineFunc(func(n int, variant bool, psm int) string {
		calls = append(calls, fmt.Sprintf("%d/%v/%d", n, variant, psm))
		if n != 3 {
			return ""
		}
		if !variant {
			// First usable plain result is incidental text; later PSMs are not consulted.
			if psm == 11 {
				return "EXIT SIGN"
			}
			return "John Doe\nSong A"
		}
		if psm == config.PSMDefault {
			return "John Doe\nSong A"
		}
		return ""
	})
	pass := &TextPass{
		Config:   config.DefaultAnalysis(),
		Engine:   engine,
		Artist:   "John Doe",
		Contrast: copyContrast,
	}
	found, err := pass.Detect(context.Background(), dir, []string{"Song A"})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(found) != 1 || found[0].Time != 3 {
		t.Fatalf("found = %+v", found)
	}
	want := "3/false/11,3/true/11,3/true/-1"
	if got := strings.Join(calls[len(calls)-3:], ","); got != want {
		t.Fatalf("last calls = %s, want %s", got, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "3bw.png")); err != nil {
		t.Fatalf("expected contrast variant on disk: %v", err)
	}
}

func TestTextPassNoOverlays(t *testing.T) {
	dir := t.TempDir()
	touchFrames(t, dir, 1, 2)
	pass := &TextPass{
		Config:   config.DefaultAnalysis(),
		Engine:   engineFunc(func(int, bool, int) string { return "Song A" }),
		Artist:   "John Doe",
		Contrast: copyContrast,
	}
	found, err := pass.Detect(context.Background(), dir, []string{"Song A"})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("text without an artist overlay must not set boundaries: %+v", found)
	}
}

func TestBackwardScan(t *testing.T) {
	tests := []struct {
		name     string
		matches  []bool // latest first
		want     int
		wantOK   bool
		consumed int
	}{
		{"misses before first match are skipped", []bool{false, false, true, true, false, true}, 7, true, 5},
		{"all match", []bool{true, true, true}, 8, true, 3},
		{"never matches", []bool{false, false}, 0, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s backwardScan
			consumed := 0
			n := 10
			for _, m := range tt.matches {
				consumed++
				if !s.observe(n, m) {
					break
				}
				n--
			}
			got, ok := s.result()
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Fatalf("result = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
			if consumed != tt.consumed {
				t.Fatalf("consumed %d frames, want %d", consumed, tt.consumed)
			}
		})
	}
}

type windowWriter struct {
	calls int
}

func (w *windowWriter) WindowFrames(_ context.Context, _ string, dir string, start, end float64, fps int, _, _ string) error {
	w.calls++
	count := int((end-start)*float64(fps)+0.5) + 1
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for n := 1; n <= count; n++ {
		for _, suffix := range []string{"", "bw"} {
			if err := os.WriteFile(filepath.Join(dir, strconv.Itoa(n)+suffix+".png"), []byte("frame"), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

// thirtyFPS is 60s at 30 fps with a keyframe every 15 frames.
func thirtyFPS() *frameindex.Index {
	records := make([]frameindex.Record, 1800)
	for i := range records {
		records[i] = frameindex.Record{Timestamp: float64(i) / 30, Keyframe: i%15 == 0}
	}
	return frameindex.New(records)
}

func TestFramePassSnapsToKeyframe(t *testing.T) {
	// Window [37, 40] yields frames 1..91; frame 91 is t=40.0. The overlay
	// is legible from frame 65 (t=39.133) onward.
	engine := engineFunc(func(n int, _ bool, _ int) string {
		if n >= 65 {
			return "John Doe\nSong B"
		}
		if n == 30 {
			return "John Doe\nSong B"
		}
		return ""
	})
	extractor := &windowWriter{}
	images := &recordingImages{}
	pass := &FramePass{
		Config:        config.DefaultAnalysis(),
		Engine:        engine,
		Artist:        "John Doe",
		Extractor:     extractor,
		Index:         thirtyFPS(),
		FPS:           30,
		Dir:           filepath.Join(t.TempDir(), "refined"),
		Logger:        logging.NewNop(),
		Images:        images,
		VariantSuffix: "bw",
	}
	segments := assemble.Build([]assemble.Boundary{{Title: "Song A", Time: 0}, {Title: "Song B", Time: 40}}, 60)
	got, err := pass.Refine(context.Background(), segments)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if extractor.calls != 1 {
		t.Fatalf("expected one window extraction, got %d", extractor.calls)
	}
	if got[1].Start != 39 {
		t.Fatalf("refined start = %v, want 39 (keyframe before frame at 39.133)", got[1].Start)
	}
	if got[0].End != 39 {
		t.Fatalf("previous end = %v, want 39", got[0].End)
	}
	if segments[1].Start != 40 {
		t.Fatal("input segments must not be modified")
	}
	if last := images.records[len(images.records)-1]; last != "refined:Song B:65" {
		t.Fatalf("last recorded image = %s", last)
	}
}

func TestFramePassKeepsStartWithoutMatch(t *testing.T) {
	pass := &FramePass{
		Config:    config.DefaultAnalysis(),
		Engine:    engineFunc(func(int, bool, int) string { return "" }),
		Artist:    "John Doe",
		Extractor: &windowWriter{},
		Index:     thirtyFPS(),
		FPS:       30,
		Dir:       filepath.Join(t.TempDir(), "refined"),
	}
	segments := assemble.Build([]assemble.Boundary{{Time: 0}, {Time: 40}}, 60)
	got, err := pass.Refine(context.Background(), segments)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if got[1].Start != 40 {
		t.Fatalf("start = %v, want 40", got[1].Start)
	}
}

func TestFramePassRejectsUnknownWeights(t *testing.T) {
	cfg := config.DefaultAnalysis()
	cfg.RefineChain = []config.RefineStep{{Weights: "lavish", PSM: 6}}
	pass := &FramePass{Config: cfg, Index: thirtyFPS()}
	if _, err := pass.Refine(context.Background(), nil); err == nil {
		t.Fatal("expected configuration error")
	}
}

func TestAudioPassNudgesToLatestSilence(t *testing.T) {
	segments := assemble.Build([]assemble.Boundary{{Time: 0}, {Time: 40}, {Time: 90}}, 120)
	silences := []audio.Silence{{Midpoint: 38}, {Midpoint: 39.5}, {Midpoint: 41}, {Midpoint: 80}}
	pass := &AudioPass{Lookback: 3}
	got := pass.Refine(segments, silences, 120)
	if got[1].Start != 39.5 || got[0].End != 39.5 {
		t.Fatalf("segment 1 = %+v, segment 0 = %+v", got[1], got[0])
	}
	if got[2].Start != 90 {
		t.Fatalf("no silence within look-back, start = %v", got[2].Start)
	}
	if got[2].End != 120 {
		t.Fatalf("last end = %v, want 120", got[2].End)
	}
	if !assemble.Contiguous(got, 120) {
		t.Fatalf("segments not contiguous: %+v", got)
	}
}

type thumbWriter struct {
	blackFrom int
	count     int
}

func (w thumbWriter) Thumbnails(_ context.Context, _ string, dir string, _, _ float64, _ int, _ string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for n := 1; n <= w.count; n++ {
		c := color.NRGBA{R: 200, G: 180, B: 160, A: 255}
		if w.blackFrom > 0 && n >= w.blackFrom {
			c = color.NRGBA{R: 5, G: 5, B: 5, A: 255}
		}
		img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
		for y := 0; y < 2; y++ {
			for x := 0; x < 4; x++ {
				img.Set(x, y, c)
			}
		}
		if err := imaging.Save(filepath.Join(dir, strconv.Itoa(n)+".png"), img); err != nil {
			return err
		}
	}
	return nil
}

func TestEndPassFindsFirstBlackFrame(t *testing.T) {
	pass := &EndPass{
		Config:    config.DefaultAnalysis(),
		Extractor: thumbWriter{blackFrom: 3, count: 5},
		FPS:       10,
		Dir:       filepath.Join(t.TempDir(), "end"),
	}
	end, ok, err := pass.FindEnd(context.Background(), 100)
	if err != nil {
		t.Fatalf("FindEnd: %v", err)
	}
	if !ok {
		t.Fatal("expected a black frame")
	}
	if end < 60.19 || end > 60.21 {
		t.Fatalf("end = %v, want 60.2", end)
	}
}

func TestEndPassWithoutBlackFrame(t *testing.T) {
	pass := &EndPass{
		Config:    config.DefaultAnalysis(),
		Extractor: thumbWriter{count: 3},
		FPS:       10,
		Dir:       filepath.Join(t.TempDir(), "end"),
	}
	_, ok, err := pass.FindEnd(context.Background(), 100)
	if err != nil {
		t.Fatalf("FindEnd: %v", err)
	}
	if ok {
		t.Fatal("expected no black frame")
	}
}
