package boundary

import (
	"context"
	"log/slog"
	"os"

	"livesplit/internal/config"
	"livesplit/internal/frames"
	"livesplit/internal/imaging"
	"livesplit/internal/logging"
	"livesplit/internal/services"
)

// ThumbnailExtractor writes small sequentially numbered frames for a window.
type ThumbnailExtractor interface {
	Thumbnails(ctx context.Context, input, dir string, start, end float64, fps int, scale string) error
}

// EndPass looks for the fade to black that ends a show.
type EndPass struct {
	Config    config.Analysis
	Extractor ThumbnailExtractor
	FPS       int
	Input     string
	Dir       string
	Logger    *slog.Logger
}

// FindEnd scans the last BlackSearchSeconds of the recording forward and
// returns the time of the first black frame.
func (p *EndPass) FindEnd(ctx context.Context, duration float64) (float64, bool, error) {
	logger := logging.NewComponentLogger(p.Logger, "end_pass")
	fps := p.FPS
	if fps <= 0 {
		fps = 1
	}
	start := max(0, duration-p.Config.BlackSearchSeconds)
	dir := p.Dir
	if err := os.RemoveAll(dir); err != nil {
		return 0, false, services.Wrap(services.ErrConfiguration, "end_pass", "reset dir", dir, err)
	}
	if err := p.Extractor.Thumbnails(ctx, p.Input, dir, start, duration, fps, p.Config.ThumbnailScale); err != nil {
		return 0, false, err
	}
	stills, err := frames.List(dir, "")
	if err != nil {
		return 0, false, services.Wrap(services.ErrExternalTool, "end_pass", "list frames", dir, err)
	}

	threshold := uint8(min(max(p.Config.BrightnessThreshold, 0), 255))
	for _, still := range stills {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		img, err := imaging.Load(still.Path)
		if err != nil {
			logger.Debug("skipping unreadable thumbnail", logging.String("path", still.Path), logging.Error(err))
			continue
		}
		if !imaging.IsBlack(img, threshold, p.Config.DarkRatio) {
			continue
		}
		ts := start + float64(still.Number-1)/float64(fps)
		logger.Info("black frame found",
			logging.Int(logging.FieldFrame, still.Number),
			logging.Seconds(logging.FieldTimestamp, ts),
		)
		return ts, true, nil
	}

	logging.WarnWithContext(logger, "no black frame near the end", "end_refine_no_black_frame",
		logging.Seconds("window_start", start),
		logging.String(logging.FieldImpact, "last song runs to the end of the recording"),
	)
	return 0, false, nil
}
