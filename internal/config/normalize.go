package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	if err := c.normalizeOCRCache(); err != nil {
		return err
	}
	c.normalizeAnalysis()
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobe
	}
	c.Tools.Tesseract = strings.TrimSpace(c.Tools.Tesseract)
	if c.Tools.Tesseract == "" {
		c.Tools.Tesseract = defaultTesseract
	}
}

func (c *Config) normalizeOCRCache() error {
	var err error
	if strings.TrimSpace(c.OCRCache.Path) == "" {
		c.OCRCache.Path = filepath.Join(c.Paths.CacheDir, defaultOCRCacheName)
	}
	if c.OCRCache.Path, err = expandPath(c.OCRCache.Path); err != nil {
		return fmt.Errorf("ocr_cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeAnalysis() {
	a := &c.Analysis
	a.CropFilter = strings.TrimSpace(a.CropFilter)
	if a.CropFilter == "" {
		a.CropFilter = defaultCropFilter
	}
	a.HighContrastFilter = strings.TrimSpace(a.HighContrastFilter)
	if a.HighContrastFilter == "" {
		a.HighContrastFilter = defaultHighContrastFilter
	}
	a.ThumbnailScale = strings.TrimSpace(a.ThumbnailScale)
	if a.ThumbnailScale == "" {
		a.ThumbnailScale = defaultThumbnailScale
	}
	defaults := DefaultAnalysis()
	if len(a.TextPassPSMs) == 0 {
		a.TextPassPSMs = defaults.TextPassPSMs
	}
	if len(a.RefineChain) == 0 {
		a.RefineChain = defaults.RefineChain
	}
	for i := range a.RefineChain {
		a.RefineChain[i].Weights = strings.ToLower(strings.TrimSpace(a.RefineChain[i].Weights))
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
