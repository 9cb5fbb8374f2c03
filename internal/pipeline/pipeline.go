package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"livesplit/internal/assemble"
	"livesplit/internal/boundary"
	"livesplit/internal/config"
	"livesplit/internal/deps"
	"livesplit/internal/export"
	"livesplit/internal/frameindex"
	"livesplit/internal/logging"
	"livesplit/internal/media"
	"livesplit/internal/media/ffmpeg"
	"livesplit/internal/media/ffprobe"
	"livesplit/internal/ocr"
	"livesplit/internal/ocr/cache"
	"livesplit/internal/services"
	"livesplit/internal/setlist"
	"livesplit/internal/workdir"
)

// staleRunAge is how old an abandoned run directory must be before the next
// split removes it.
const staleRunAge = 24 * time.Hour

// MediaTool is the slice of ffmpeg the pipeline drives.
type MediaTool interface {
	boundary.WindowExtractor
	boundary.ThumbnailExtractor
	export.Clipper
	CoarseFrames(ctx context.Context, input, dir string, fps int, crop string) error
	Waveform(ctx context.Context, input, output string, sampleRate int) error
}

// ProbeFunc inspects a recording.
type ProbeFunc func(ctx context.Context, path string) (ffprobe.Info, error)

// Source records where a run's song boundaries came from.
type Source string

const (
	SourceDetected Source = "detected"
	SourceAudio    Source = "audio"
	SourceCached   Source = "cached"
	SourceFile     Source = "file"
)

// Options are the per-run choices made on the command line.
type Options struct {
	Input            string
	SetlistPath      string
	TimestampsFile   string
	RefineTimestamps bool
	NoSaveSongs      bool
	OutputFormat     string
	OutputDir        string
	AnalyzeImages    bool
	KeepWorkDir      bool
}

// Result summarizes a finished run.
type Result struct {
	RunID       string
	Source      Source
	Duration    float64
	Segments    []assemble.Segment
	Timestamps  []setlist.SongTimestamp
	SetlistPath string
	Exported    []string
}

// Pipeline wires configuration to the media tools and OCR engine.
type Pipeline struct {
	Config *config.Config
	Logger *slog.Logger
	Media  MediaTool
	Probe  ProbeFunc
	Engine ocr.Engine

	store *cache.Store
}

// New builds a pipeline backed by the configured binaries. When the OCR
// cache is enabled the tesseract engine is wrapped with it; Close releases
// the cache.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new", "config is nil", nil)
	}
	runner := media.CmdRunner{}
	ffprobeBinary := deps.ResolveFFprobe(cfg.Tools.FFmpeg, cfg.Tools.FFprobe)
	p := &Pipeline{
		Config: cfg,
		Logger: logger,
		Media:  ffmpeg.New(runner, cfg.Tools.FFmpeg),
		Probe: func(ctx context.Context, path string) (ffprobe.Info, error) {
			return ffprobe.Probe(ctx, runner, ffprobeBinary, path)
		},
	}
	var engine ocr.Engine = ocr.NewTesseract(runner, cfg.Tools.Tesseract)
	if cfg.OCRCache.Enabled {
		store, err := cache.Open(ctx, cfg.OCRCache.Path)
		if err != nil {
			return nil, err
		}
		p.store = store
		engine = cache.Wrap(engine, store, logger)
	}
	p.Engine = engine
	return p, nil
}

// Close releases the OCR cache, if one was opened.
func (p *Pipeline) Close() error {
	if p == nil || p.store == nil {
		return nil
	}
	if cached, ok := p.Engine.(*cache.Engine); ok {
		hits, misses := cached.Stats()
		logging.NewComponentLogger(p.Logger, "ocr_cache").Info("ocr cache closed",
			logging.String("path", p.store.Path()),
			logging.Int("hits", hits),
			logging.Int("misses", misses),
		)
	}
	err := p.store.Close()
	p.store = nil
	return err
}

// Run splits opts.Input according to the setlist at opts.SetlistPath.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	base := logging.WithContext(ctx, p.Logger)
	logger := logging.NewComponentLogger(base, "pipeline")
	cfg := p.Config

	list, err := setlist.Load(opts.SetlistPath)
	if err != nil {
		return nil, err
	}
	formatName := opts.OutputFormat
	if strings.TrimSpace(formatName) == "" {
		formatName = cfg.Output.Format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	outRoot := opts.OutputDir
	if strings.TrimSpace(outRoot) == "" {
		outRoot = cfg.Paths.OutputDir
	}
	outDir := filepath.Join(outRoot, list.FolderName())

	run, err := workdir.Acquire(cfg.Paths.WorkDir, runID, base)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := run.Release(opts.KeepWorkDir); err != nil {
			logging.WarnWithContext(logger, "failed to release work directory", "workdir_release_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the run directory by hand"),
				logging.String(logging.FieldImpact, "stale frames left on disk"),
			)
		}
	}()
	workdir.CleanStale(cfg.Paths.WorkDir, staleRunAge, base)

	logger.Info("split started",
		logging.String("input", opts.Input),
		logging.String("setlist", opts.SetlistPath),
		logging.String("artist", list.Artist),
		logging.Int("songs", len(list.Songs)),
		logging.String(logging.FieldEventType, "split_started"),
	)

	info, err := p.Probe(services.WithStage(ctx, "probe"), opts.Input)
	if err != nil {
		return nil, err
	}
	if info.Frames == nil {
		info.Frames = frameindex.New(nil)
	}
	logger.Info("probed input",
		logging.Seconds("duration", info.Duration),
		logging.Int("fps", info.FPS),
		logging.Int("frames", info.Frames.Len()),
		logging.Int("keyframes", info.Frames.KeyframeCount()),
	)

	s := &split{
		p:      p,
		opts:   opts,
		list:   list,
		info:   info,
		run:    run,
		base:   base,
		logger: logger,
	}
	if opts.AnalyzeImages {
		s.images = &export.AnalysisImages{Dir: filepath.Join(outDir, "analysis", "images")}
	}

	segments, source, refine, err := s.boundaries(ctx)
	if err != nil {
		return nil, err
	}
	if refine {
		if segments, err = s.refine(ctx, segments); err != nil {
			return nil, err
		}
	}

	titles := list.Titles()
	if err := assemble.CheckCoverage(segments, titles); err != nil {
		logging.ErrorWithContext(logger, "too few songs for the setlist", "coverage_failed",
			logging.Error(err),
			logging.String("source", string(source)),
			logging.String(logging.FieldErrorHint, "check the timestamps or the overlay crop"),
		)
		return nil, err
	}
	result := &Result{
		RunID:       runID,
		Source:      source,
		Duration:    info.Duration,
		Segments:    segments,
		Timestamps:  assemble.Timestamps(segments, titles),
		SetlistPath: filepath.Join(outDir, setlist.OutputName(opts.SetlistPath)),
	}
	list.Timestamps = result.Timestamps
	if err := list.Save(result.SetlistPath); err != nil {
		return result, err
	}
	logger.Info("saved timestamps",
		logging.String("path", result.SetlistPath),
		logging.Int("songs", len(result.Timestamps)),
		logging.String("source", string(source)),
	)

	if opts.NoSaveSongs {
		logger.Info("song export skipped", logging.String(logging.FieldEventType, "export_skipped"))
		return result, nil
	}
	exporter := &export.Exporter{Clipper: p.Media, Format: format, Logger: base}
	written, err := exporter.Export(services.WithStage(ctx, "export"), opts.Input, outDir, segments, list)
	result.Exported = written
	if err != nil {
		logging.ErrorWithContext(logger, "song export failed", "export_failed",
			logging.Error(err),
			logging.Int("written", len(written)),
			logging.String(logging.FieldErrorHint, "rerun with the saved setlist to reuse its timestamps"),
		)
		return result, err
	}
	logger.Info("split complete",
		logging.Int("files", len(written)),
		logging.String("output", outDir),
		logging.String(logging.FieldEventType, "split_completed"),
	)
	return result, nil
}

// ErrNoSongs reports a recording where neither overlays nor silences
// produced a single song.
var ErrNoSongs = errors.New("no songs found")

func wrapNoSongs(input string) error {
	return services.Wrap(services.ErrDetection, "pipeline", "detect", fmt.Sprintf("%s: no title overlays or silences", filepath.Base(input)), ErrNoSongs)
}
