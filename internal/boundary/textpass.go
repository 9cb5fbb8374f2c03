package boundary

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"livesplit/internal/assemble"
	"livesplit/internal/config"
	"livesplit/internal/frames"
	"livesplit/internal/imaging"
	"livesplit/internal/logging"
	"livesplit/internal/ocr"
	"livesplit/internal/services"
	"livesplit/internal/textutil"
	"livesplit/internal/titlematch"
)

// contrastSuffix names the thresholded copy of a coarse frame.
const contrastSuffix = "bw"

// TextPass detects song starts from title overlays in coarse frames.
type TextPass struct {
	Config config.Analysis
	Engine ocr.Engine
	Artist string
	Logger *slog.Logger
	Images ImageRecorder

	// Contrast writes a high-contrast copy of src to dst. Defaults to an
	// imaging threshold at Config.HighContrastPercent.
	Contrast func(src, dst string) error
}

// Detect scans the numbered frames in dir in time order. Frame n is taken
// at n / CoarseFPS seconds. Each title is claimed by the first frame whose
// artist overlay also carries it; frames closer than MinSongSeconds to the
// previous start are skipped.
func (p *TextPass) Detect(ctx context.Context, dir string, titles []string) ([]assemble.Boundary, error) {
	logger := logging.NewComponentLogger(p.Logger, "text_pass")
	recorder := recorderOrNop(p.Images)
	contrast := p.Contrast
	if contrast == nil {
		percent := p.Config.HighContrastPercent
		contrast = func(src, dst string) error { return imaging.HighContrast(src, dst, percent) }
	}
	fps := p.Config.CoarseFPS
	if fps <= 0 {
		fps = 1
	}

	stills, err := frames.List(dir, "")
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "text_pass", "list frames", dir, err)
	}
	logger.Info("scanning frames for title overlays",
		logging.Int("frames", len(stills)),
		logging.Int("titles", len(titles)),
	)

	remaining := byLengthDesc(titles)
	var (
		found    []assemble.Boundary
		last     float64
		haveLast bool
	)
	for _, still := range stills {
		if len(remaining) == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ts := float64(still.Number) / float64(fps)
		if haveLast && ts-last < p.Config.MinSongSeconds {
			continue
		}

		outcome, ok, err := p.matchFrame(ctx, logger, still, remaining, contrast)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		logger.Info("title overlay matched",
			logging.String(logging.FieldSongTitle, outcome.Title),
			logging.Int(logging.FieldFrame, still.Number),
			logging.Seconds(logging.FieldTimestamp, ts),
			logging.String("reason", outcome.Reason.String()),
			logging.Int("score", outcome.Score),
			logging.String("line", outcome.Line),
		)
		if err := recorder.Record("initial", outcome.Title, still.Number, still.Path); err != nil {
			logging.WarnWithContext(logger, "failed to save matched frame", "analysis_image_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "analysis image missing for this title"),
			)
		}
		found = append(found, assemble.Boundary{Title: outcome.Title, Time: ts, Overlay: true})
		remaining = without(remaining, outcome.Title)
		last, haveLast = ts, true
	}

	if len(found) == 0 {
		logging.WarnWithContext(logger, "no title overlays detected", "text_pass_empty",
			logging.String(logging.FieldErrorHint, "check the crop filter covers the overlay area"),
			logging.String(logging.FieldImpact, "falling back to audio-only detection"),
		)
	}
	return found, nil
}

// matchFrame tries the raw frame and then its high-contrast copy. Within a
// variant the first PSM yielding any text is the only one consulted.
func (p *TextPass) matchFrame(ctx context.Context, logger *slog.Logger, still frames.Still, titles []string, contrast func(src, dst string) error) (titlematch.Outcome, bool, error) {
	variants := []string{still.Path, frames.Path(filepath.Dir(still.Path), still.Number, contrastSuffix)}
	for i, path := range variants {
		if i == 1 {
			if err := contrast(still.Path, path); err != nil {
				return titlematch.Outcome{}, false, services.Wrap(services.ErrExternalTool, "text_pass", "high contrast", fmt.Sprintf("frame %d", still.Number), err)
			}
		}
		result, psm, ok, err := ocr.FirstUsable(ctx, p.Engine, path, p.Config.TextPassPSMs, p.Artist)
		if err != nil {
			return titlematch.Outcome{}, false, err
		}
		if !ok {
			continue
		}
		if !result.Overlay {
			logger.Debug("ignoring text without artist overlay",
				logging.Int(logging.FieldFrame, still.Number),
				logging.Int("psm", psm),
				logging.String("first_line", result.Lines[0]),
			)
			continue
		}
		best, all, matched := titlematch.BestMatch(result.Lines, titles, true, textutil.Stingy)
		if len(all) > 1 {
			for _, candidate := range all {
				logger.Debug("candidate title",
					logging.Int(logging.FieldFrame, still.Number),
					logging.String(logging.FieldSongTitle, candidate.Title),
					logging.Int("score", candidate.Score),
				)
			}
		}
		if matched {
			return best, true, nil
		}
	}
	return titlematch.Outcome{}, false, nil
}

func byLengthDesc(titles []string) []string {
	out := make([]string, len(titles))
	copy(out, titles)
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return out
}

// without drops the first occurrence of title, so a title listed twice in
// the catalog can be claimed twice.
func without(titles []string, title string) []string {
	out := make([]string, 0, len(titles))
	removed := false
	for _, t := range titles {
		if !removed && t == title {
			removed = true
			continue
		}
		out = append(out, t)
	}
	return out
}
