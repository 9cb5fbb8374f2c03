package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"livesplit/internal/media"
	"livesplit/internal/services"
)

// VariantSuffix marks the high-contrast copy of a numbered frame, so frame
// 12 is written as 12.png and 12bw.png.
const VariantSuffix = "bw"

// Tool runs a configured ffmpeg binary.
type Tool struct {
	Runner media.Runner
	Binary string
}

// New returns a Tool, defaulting the binary to "ffmpeg" and the runner to
// os/exec.
func New(runner media.Runner, binary string) *Tool {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if runner == nil {
		runner = media.CmdRunner{}
	}
	return &Tool{Runner: runner, Binary: binary}
}

func (t *Tool) run(ctx context.Context, stage string, args []string) error {
	full := append([]string{"-hide_banner", "-loglevel", "warning"}, args...)
	_, err := media.Exec(ctx, t.Runner, stage, t.Binary, full)
	return err
}

// CoarseFrames writes one cropped frame per 1/fps seconds of the whole input
// into dir. Files are named by presentation timestamp in the fps time base,
// so frame n sits at n/fps seconds.
func (t *Tool) CoarseFrames(ctx context.Context, input, dir string, fps int, crop string) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	filter := fmt.Sprintf("fps=%d", fps)
	if fps == 1 {
		filter += ",select='not(mod(t,1))'"
	}
	filter = joinFilters(filter, crop)
	return t.run(ctx, "text_pass", []string{
		"-i", input,
		"-c:v", "png",
		"-frame_pts", "1",
		"-fps_mode", "passthrough",
		"-vf", filter,
		filepath.Join(dir, "%d.png"),
	})
}

// WindowFrames extracts [start, end] at the native frame rate twice: the
// plain crop as N.png and the high-contrast crop as Nbw.png. Numbering is
// sequential from 1.
func (t *Tool) WindowFrames(ctx context.Context, input, dir string, start, end float64, fps int, crop, highContrast string) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	base := joinFilters(fmt.Sprintf("fps=%d", fps), crop)
	if err := t.run(ctx, "frame_refine", windowArgs(input, start, end, base, filepath.Join(dir, "%d.png"))); err != nil {
		return err
	}
	contrast := joinFilters(base, highContrast)
	return t.run(ctx, "frame_refine", windowArgs(input, start, end, contrast, filepath.Join(dir, "%d"+VariantSuffix+".png")))
}

// Thumbnails extracts [start, end] at fps, scaled down, as sequentially
// numbered PNGs.
func (t *Tool) Thumbnails(ctx context.Context, input, dir string, start, end float64, fps int, scale string) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	filter := joinFilters(fmt.Sprintf("fps=%d", fps), "scale="+strings.TrimPrefix(scale, "scale="))
	return t.run(ctx, "black_frame", windowArgs(input, start, end, filter, filepath.Join(dir, "%d.png")))
}

// Waveform writes the input's audio as a mono 16-bit PCM WAV file at
// sampleRate.
func (t *Tool) Waveform(ctx context.Context, input, output string, sampleRate int) error {
	if err := ensureDir(filepath.Dir(output)); err != nil {
		return err
	}
	return t.run(ctx, "audio_refine", []string{
		"-i", input,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", "1",
		"-y", output,
	})
}

func windowArgs(input string, start, end float64, filter, pattern string) []string {
	args := []string{"-i", input}
	args = append(args, FromTo(start, end)...)
	return append(args, "-vf", filter, pattern)
}

// FromTo renders a millisecond-precision -ss/-to pair.
func FromTo(start, end float64) []string {
	return []string{"-ss", fmt.Sprintf("%.3f", start), "-to", fmt.Sprintf("%.3f", end)}
}

func joinFilters(filters ...string) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, ",")
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "media", "mkdir", dir, err)
	}
	return nil
}
