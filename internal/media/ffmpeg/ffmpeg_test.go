package ffmpeg

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"livesplit/internal/media"
)

type recordingRunner struct {
	binary string
	calls  [][]string
}

func (r *recordingRunner) Run(_ context.Context, command string, args []string, _ media.RunOptions) (media.RunResult, error) {
	r.binary = command
	r.calls = append(r.calls, append([]string(nil), args...))
	return media.RunResult{}, nil
}

func valueAfter(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

func TestCoarseFrames(t *testing.T) {
	runner := &recordingRunner{}
	tool := New(runner, "")
	dir := filepath.Join(t.TempDir(), "frames")
	if err := tool.CoarseFrames(context.Background(), "in.mp4", dir, 1, "crop=iw:ih/4:0:0"); err != nil {
		t.Fatalf("CoarseFrames: %v", err)
	}
	if runner.binary != "ffmpeg" {
		t.Fatalf("binary = %q, want ffmpeg", runner.binary)
	}
	args := runner.calls[0]
	if args[0] != "-hide_banner" {
		t.Fatalf("expected -hide_banner first, got %v", args)
	}
	if got := valueAfter(args, "-vf"); got != "fps=1,select='not(mod(t,1))',crop=iw:ih/4:0:0" {
		t.Fatalf("filter = %q", got)
	}
	if got := args[len(args)-1]; got != filepath.Join(dir, "%d.png") {
		t.Fatalf("output pattern = %q", got)
	}
}

func TestWindowFramesWritesBothVariants(t *testing.T) {
	runner := &recordingRunner{}
	tool := New(runner, "/usr/bin/ffmpeg")
	dir := t.TempDir()
	if err := tool.WindowFrames(context.Background(), "in.mp4", dir, 37, 40.0334, 30, "crop=a", "format=gray"); err != nil {
		t.Fatalf("WindowFrames: %v", err)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(runner.calls))
	}
	plain, contrast := runner.calls[0], runner.calls[1]
	if valueAfter(plain, "-ss") != "37.000" || valueAfter(plain, "-to") != "40.033" {
		t.Fatalf("unexpected window args %v", plain)
	}
	if valueAfter(plain, "-vf") != "fps=30,crop=a" {
		t.Fatalf("plain filter = %q", valueAfter(plain, "-vf"))
	}
	if valueAfter(contrast, "-vf") != "fps=30,crop=a,format=gray" {
		t.Fatalf("contrast filter = %q", valueAfter(contrast, "-vf"))
	}
	if !strings.HasSuffix(contrast[len(contrast)-1], "%dbw.png") {
		t.Fatalf("contrast pattern = %q", contrast[len(contrast)-1])
	}
}

func TestThumbnailsScale(t *testing.T) {
	runner := &recordingRunner{}
	tool := New(runner, "")
	if err := tool.Thumbnails(context.Background(), "in.mp4", t.TempDir(), 60, 100, 25, "200:100"); err != nil {
		t.Fatalf("Thumbnails: %v", err)
	}
	if got := valueAfter(runner.calls[0], "-vf"); got != "fps=25,scale=200:100" {
		t.Fatalf("filter = %q", got)
	}
}

func TestWaveformArgs(t *testing.T) {
	runner := &recordingRunner{}
	tool := New(runner, "")
	out := filepath.Join(t.TempDir(), "audio", "show.wav")
	if err := tool.Waveform(context.Background(), "in.mp4", out, 44100); err != nil {
		t.Fatalf("Waveform: %v", err)
	}
	args := runner.calls[0]
	if valueAfter(args, "-acodec") != "pcm_s16le" || valueAfter(args, "-ar") != "44100" || valueAfter(args, "-ac") != "1" {
		t.Fatalf("unexpected waveform args %v", args)
	}
	if args[len(args)-1] != out {
		t.Fatalf("output = %q", args[len(args)-1])
	}
}

func TestExportMetadata(t *testing.T) {
	runner := &recordingRunner{}
	tool := New(runner, "")
	clip := Clip{
		Input:  "in.mp4",
		Output: "out.m4a",
		Start:  0,
		End:    61.5,
		Metadata: Metadata{
			Artist: "John Doe",
			Title:  "Song A",
			Year:   "2024",
			Track:  1,
		},
	}
	if err := tool.ExportAudio(context.Background(), clip); err != nil {
		t.Fatalf("ExportAudio: %v", err)
	}
	args := strings.Join(runner.calls[0], " ")
	for _, want := range []string{"-map 0:a", "-metadata artist=John Doe", "-metadata title=Song A", "-metadata date=2024", "-metadata track=1", "-to 61.500"} {
		if !strings.Contains(args, want) {
			t.Fatalf("expected %q in %q", want, args)
		}
	}
	if strings.Contains(args, "album=") {
		t.Fatalf("empty album should be omitted: %q", args)
	}

	if err := tool.ExportVideo(context.Background(), Clip{Input: "in.mp4", Output: "out.mp4", End: 10}); err != nil {
		t.Fatalf("ExportVideo: %v", err)
	}
	if valueAfter(runner.calls[1], "-c") != "copy" {
		t.Fatalf("expected stream copy, got %v", runner.calls[1])
	}
}
