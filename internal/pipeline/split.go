package pipeline

import (
	"context"
	"log/slog"

	"livesplit/internal/assemble"
	"livesplit/internal/audio"
	"livesplit/internal/boundary"
	"livesplit/internal/logging"
	"livesplit/internal/media/ffmpeg"
	"livesplit/internal/media/ffprobe"
	"livesplit/internal/services"
	"livesplit/internal/setlist"
	"livesplit/internal/workdir"
)

// split carries the state of one run between stages.
type split struct {
	p      *Pipeline
	opts   Options
	list   *setlist.SetList
	info   ffprobe.Info
	run    *workdir.Run
	images boundary.ImageRecorder
	base   *slog.Logger
	logger *slog.Logger

	analysis *audio.Analysis
}

// boundaries picks the segment source: a timestamps file, timestamps cached
// in the setlist, or detection. The bool reports whether the segments still
// need refining.
func (s *split) boundaries(ctx context.Context) ([]assemble.Segment, Source, bool, error) {
	if s.opts.TimestampsFile != "" {
		ts, err := setlist.LoadTimestamps(s.opts.TimestampsFile)
		if err != nil {
			return nil, "", false, err
		}
		s.logger.Info("using timestamps file", logging.Args(append(
			logging.DecisionAttrs("boundary_source", string(SourceFile), "timestamps file supplied"),
			logging.String("path", s.opts.TimestampsFile),
			logging.Int("songs", len(ts)),
			logging.Bool("refine", s.opts.RefineTimestamps),
		)...)...)
		return assemble.FromTimestamps(ts), SourceFile, s.opts.RefineTimestamps, nil
	}
	if len(s.list.Timestamps) > 0 {
		s.logger.Info("using cached timestamps", logging.Args(append(
			logging.DecisionAttrs("boundary_source", string(SourceCached), "setlist carries timestamps"),
			logging.Int("songs", len(s.list.Timestamps)),
		)...)...)
		return assemble.FromTimestamps(s.list.Timestamps), SourceCached, true, nil
	}
	segments, source, err := s.detect(ctx)
	return segments, source, true, err
}

// detect runs the text pass over coarse frames and refines the result
// against native-rate frames. Recordings without a single overlay fall back
// to splitting on the longest silences.
func (s *split) detect(ctx context.Context) ([]assemble.Segment, Source, error) {
	cfg := s.p.Config.Analysis
	titles := s.list.Titles()

	textCtx := services.WithStage(ctx, "text_pass")
	if err := s.p.Media.CoarseFrames(textCtx, s.opts.Input, s.run.FramesDir(), cfg.CoarseFPS, cfg.CropFilter); err != nil {
		return nil, "", err
	}
	text := &boundary.TextPass{
		Config: cfg,
		Engine: s.p.Engine,
		Artist: s.list.Artist,
		Logger: s.base,
		Images: s.images,
	}
	found, err := text.Detect(textCtx, s.run.FramesDir(), titles)
	if err != nil {
		return nil, "", err
	}

	if len(found) == 0 {
		logging.WarnWithContext(s.logger, "no title overlays found; splitting on silence", "overlay_detection_empty",
			logging.Int("songs", len(titles)),
			logging.String(logging.FieldErrorHint, "check crop_filter covers the overlay region"),
			logging.String(logging.FieldImpact, "song boundaries come from audio only"),
		)
		analysis, err := s.audio(ctx)
		if err != nil {
			return nil, "", err
		}
		starts := audio.LongestStarts(analysis.Silences, len(titles))
		segments := assemble.FromStarts(starts, s.info.Duration)
		if len(segments) == 0 {
			return nil, "", wrapNoSongs(s.opts.Input)
		}
		return segments, SourceAudio, nil
	}

	segments := assemble.Build(found, s.info.Duration)
	if err := assemble.CheckCoverage(segments, titles); err != nil {
		return nil, "", err
	}

	frame := &boundary.FramePass{
		Config:        cfg,
		Engine:        s.p.Engine,
		Artist:        s.list.Artist,
		Extractor:     s.p.Media,
		Index:         s.info.Frames,
		FPS:           s.info.FPS,
		Input:         s.opts.Input,
		Dir:           s.run.RefineDir(),
		Logger:        s.base,
		Images:        s.images,
		VariantSuffix: ffmpeg.VariantSuffix,
	}
	segments, err = frame.Refine(services.WithStage(ctx, "frame_pass"), segments)
	if err != nil {
		return nil, "", err
	}
	return segments, SourceDetected, nil
}

// refine nudges starts onto silences and trims the last song at the fade to
// black.
func (s *split) refine(ctx context.Context, segments []assemble.Segment) ([]assemble.Segment, error) {
	cfg := s.p.Config.Analysis
	analysis, err := s.audio(ctx)
	if err != nil {
		return nil, err
	}
	pass := &boundary.AudioPass{Lookback: cfg.SilenceLookbackSeconds, Logger: s.base}
	segments = pass.Refine(segments, analysis.Silences, s.info.Duration)

	end := &boundary.EndPass{
		Config:    cfg,
		Extractor: s.p.Media,
		FPS:       s.info.FPS,
		Input:     s.opts.Input,
		Dir:       s.run.EndDir(),
		Logger:    s.base,
	}
	at, ok, err := end.FindEnd(services.WithStage(ctx, "end_pass"), s.info.Duration)
	if err != nil {
		return nil, err
	}
	if ok {
		segments = assemble.EndSongsAt(segments, at, s.info.Duration)
	}
	return segments, nil
}

// audio extracts and analyzes the waveform once per run.
func (s *split) audio(ctx context.Context) (audio.Analysis, error) {
	if s.analysis != nil {
		return *s.analysis, nil
	}
	cfg := s.p.Config.Analysis
	path := s.run.WaveformPath()
	if err := s.p.Media.Waveform(services.WithStage(ctx, "audio_pass"), s.opts.Input, path, cfg.SampleRate); err != nil {
		return audio.Analysis{}, err
	}
	wave, err := audio.DecodeFile(path)
	if err != nil {
		return audio.Analysis{}, err
	}
	analysis := audio.Analyze(wave, cfg)
	s.logger.Info("analyzed waveform",
		logging.Seconds("duration", wave.Duration()),
		logging.Float64("threshold", analysis.Threshold),
		logging.Int("silences", len(analysis.Silences)),
	)
	s.analysis = &analysis
	return analysis, nil
}
