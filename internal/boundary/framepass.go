package boundary

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"livesplit/internal/assemble"
	"livesplit/internal/config"
	"livesplit/internal/frameindex"
	"livesplit/internal/frames"
	"livesplit/internal/logging"
	"livesplit/internal/ocr"
	"livesplit/internal/services"
	"livesplit/internal/textutil"
	"livesplit/internal/titlematch"
)

// WindowExtractor writes native-rate frames for a time window: the plain
// crop as N.png and the high-contrast crop as N<suffix>.png, numbered from 1.
type WindowExtractor interface {
	WindowFrames(ctx context.Context, input, dir string, start, end float64, fps int, crop, highContrast string) error
}

// FramePass moves each song start back to the earliest frame where its
// overlay is still legible.
type FramePass struct {
	Config    config.Analysis
	Engine    ocr.Engine
	Artist    string
	Extractor WindowExtractor
	Index     *frameindex.Index
	FPS       int
	Input     string
	Logger    *slog.Logger
	Images    ImageRecorder

	// Dir holds one refine window subdirectory per song position.
	Dir string

	// VariantSuffix names the high-contrast frames the extractor writes.
	VariantSuffix string
}

type refineStep struct {
	name    string
	weights textutil.Weights
	psm     int
}

// Refine returns a copy of segments with every start after the first
// refined. Segments must be contiguous; the previous segment's end follows
// each moved start.
func (p *FramePass) Refine(ctx context.Context, segments []assemble.Segment) ([]assemble.Segment, error) {
	logger := logging.NewComponentLogger(p.Logger, "frame_pass")
	steps, err := p.steps()
	if err != nil {
		return nil, err
	}

	out := make([]assemble.Segment, len(segments))
	copy(out, segments)
	for i := range out {
		if i == 0 || !out[i].IsSong || out[i].Start <= 0 {
			continue
		}
		refined, ok, err := p.refineStart(ctx, logger, i, out[i], steps)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		logger.Info("refined song start",
			logging.String(logging.FieldSongTitle, out[i].Title),
			logging.Seconds("from", out[i].Start),
			logging.Seconds("to", refined),
		)
		out[i].Start = refined
		out[i-1].End = refined
	}
	return out, nil
}

func (p *FramePass) steps() ([]refineStep, error) {
	steps := make([]refineStep, 0, len(p.Config.RefineChain))
	for _, s := range p.Config.RefineChain {
		w, ok := textutil.Preset(s.Weights)
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "frame_pass", "refine chain", fmt.Sprintf("unknown weights %q", s.Weights), nil)
		}
		steps = append(steps, refineStep{name: s.Weights, weights: w, psm: s.PSM})
	}
	return steps, nil
}

func (p *FramePass) refineStart(ctx context.Context, logger *slog.Logger, pos int, seg assemble.Segment, steps []refineStep) (float64, bool, error) {
	target := seg.Start
	endIdx, ok := p.Index.FrameAtOrAfter(target)
	if !ok {
		logging.WarnWithContext(logger, "no frame at or after detected start", "frame_refine_no_frame",
			logging.String(logging.FieldSongTitle, seg.Title),
			logging.Seconds(logging.FieldTimestamp, target),
			logging.String(logging.FieldImpact, "start kept at coarse resolution"),
		)
		return 0, false, nil
	}
	end := p.Index.Frame(endIdx).Timestamp
	start := max(0, target-p.Config.RefineLookbackSeconds)

	dir := filepath.Join(p.Dir, strconv.Itoa(pos))
	if err := os.RemoveAll(dir); err != nil {
		return 0, false, fmt.Errorf("reset refine dir: %w", err)
	}
	if err := p.Extractor.WindowFrames(ctx, p.Input, dir, start, end, p.FPS, p.Config.CropFilter, p.Config.HighContrastFilter); err != nil {
		return 0, false, err
	}
	stills, err := frames.List(dir, "")
	if err != nil {
		return 0, false, services.Wrap(services.ErrExternalTool, "frame_pass", "list frames", dir, err)
	}
	logger.Debug("scanning refine window",
		logging.String(logging.FieldSongTitle, seg.Title),
		logging.Seconds("window_start", start),
		logging.Seconds("window_end", end),
		logging.Int("frames", len(stills)),
	)

	recorder := recorderOrNop(p.Images)
	var scan backwardScan
	for i := len(stills) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		still := stills[i]
		matched, err := p.frameMatches(ctx, dir, still, seg.Title, steps)
		if err != nil {
			return 0, false, err
		}
		if matched && (scan.state == scanSearching || still.Number < scan.earliest) {
			if err := recorder.Record("refined", seg.Title, still.Number, still.Path); err != nil {
				logger.Debug("failed to save refined frame", logging.Error(err))
			}
		}
		if !scan.observe(still.Number, matched) {
			break
		}
	}

	earliest, found := scan.result()
	if !found {
		logging.WarnWithContext(logger, "could not find earlier boundary", "frame_refine_no_match",
			logging.String(logging.FieldSongTitle, seg.Title),
			logging.Seconds(logging.FieldTimestamp, target),
			logging.String(logging.FieldImpact, "start kept at coarse resolution"),
		)
		return 0, false, nil
	}

	// The last extracted frame is the frame at or after the target.
	idx := endIdx - (len(stills) - earliest)
	if idx < 0 {
		idx = 0
	}
	frameTime := p.Index.Frame(idx).Timestamp
	key, ok := p.Index.KeyframeAtOrBefore(frameTime)
	refined := frameTime
	if ok {
		refined = p.Index.Frame(key).Timestamp
	}
	if refined <= 0 || refined >= target {
		logger.Debug("refined start outside accepted range",
			logging.String(logging.FieldSongTitle, seg.Title),
			logging.Seconds("refined", refined),
			logging.Seconds(logging.FieldTimestamp, target),
		)
		return 0, false, nil
	}
	return refined, true, nil
}

// frameMatches reports whether either variant of the frame still shows the
// overlay, or the title under one of the refine steps.
func (p *FramePass) frameMatches(ctx context.Context, dir string, still frames.Still, title string, steps []refineStep) (bool, error) {
	paths := []string{still.Path}
	if p.VariantSuffix != "" {
		variant := frames.Path(dir, still.Number, p.VariantSuffix)
		if _, err := os.Stat(variant); err == nil {
			paths = append(paths, variant)
		}
	}
	for _, path := range paths {
		for _, step := range steps {
			result, ok, err := ocr.Read(ctx, p.Engine, path, step.psm, p.Artist)
			if err != nil {
				return false, err
			}
			if !ok {
				continue
			}
			if result.Overlay {
				return true, nil
			}
			if _, hit := titlematch.MatchTitle(result.Lines, title, false, step.weights); hit {
				return true, nil
			}
		}
	}
	return false, nil
}
