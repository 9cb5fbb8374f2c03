package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"livesplit/internal/assemble"
	"livesplit/internal/logging"
	"livesplit/internal/media/ffmpeg"
	"livesplit/internal/setlist"
	"livesplit/internal/textutil"
)

// Clipper writes a single clip.
type Clipper interface {
	ExportVideo(ctx context.Context, clip ffmpeg.Clip) error
	ExportAudio(ctx context.Context, clip ffmpeg.Clip) error
}

// Exporter writes every song segment of a recording.
type Exporter struct {
	Clipper Clipper
	Format  Format
	Logger  *slog.Logger
}

// Export writes song segments to outDir, naming and tagging them by catalog
// position. Gaps are skipped. More song segments than catalog entries is an
// error and nothing is written.
func (e *Exporter) Export(ctx context.Context, input, outDir string, segments []assemble.Segment, list *setlist.SetList) ([]string, error) {
	logger := logging.NewComponentLogger(e.Logger, "export")
	catalog := list.Titles()
	if err := assemble.CheckCount(segments, catalog); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	format := e.Format
	if format == "" {
		format = FormatBoth
	}

	var written []string
	track, gaps := 0, 0
	for _, seg := range segments {
		if !seg.IsSong {
			gaps++
			logger.Debug("skipping gap",
				logging.Seconds("start", seg.Start),
				logging.Seconds("end", seg.End),
			)
			continue
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}
		title := assemble.TitleAt(catalog, track)
		track++
		clip := ffmpeg.Clip{
			Input: input,
			Start: seg.Start,
			End:   seg.End,
			Metadata: ffmpeg.Metadata{
				Artist: list.Artist,
				Title:  title,
				Album:  list.Album,
				Year:   list.Year(),
				Track:  track,
			},
		}
		base := filepath.Join(outDir, textutil.SanitizeFileName(title))
		logger.Info("exporting song",
			logging.Int("track", track),
			logging.String(logging.FieldSongTitle, title),
			logging.Seconds("start", seg.Start),
			logging.Seconds("end", seg.End),
			logging.Seconds("duration", seg.Duration()),
			logging.String("format", string(format)),
		)
		if format.Video() {
			clip.Output = base + ".mp4"
			if err := e.Clipper.ExportVideo(ctx, clip); err != nil {
				return written, fmt.Errorf("export %q video: %w", title, err)
			}
			written = append(written, clip.Output)
		}
		if format.Audio() {
			clip.Output = base + ".m4a"
			if err := e.Clipper.ExportAudio(ctx, clip); err != nil {
				return written, fmt.Errorf("export %q audio: %w", title, err)
			}
			written = append(written, clip.Output)
		}
	}
	logger.Info("export complete",
		logging.Int("songs", track),
		logging.Int("gaps", gaps),
		logging.Int("files", len(written)),
	)
	return written, nil
}
