package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkDir   string `toml:"work_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	CacheDir  string `toml:"cache_dir"`
}

// Tools names the external binaries invoked during analysis and export.
type Tools struct {
	FFmpeg    string `toml:"ffmpeg"`
	FFprobe   string `toml:"ffprobe"`
	Tesseract string `toml:"tesseract"`
}

// RefineStep is one (weights, psm) combination tried per frame during the
// backward frame pass.
type RefineStep struct {
	Weights string `toml:"weights"`
	PSM     int    `toml:"psm"`
}

// Analysis groups every tuning constant used by the detection and refinement
// passes. A PSM of -1 leaves segmentation to the OCR engine default.
type Analysis struct {
	CropFilter            string       `toml:"crop_filter"`
	HighContrastFilter    string       `toml:"high_contrast_filter"`
	HighContrastPercent   float64      `toml:"high_contrast_percent"`
	CoarseFPS             int          `toml:"coarse_fps"`
	MinSongSeconds        float64      `toml:"min_song_seconds"`
	TextPassPSMs          []int        `toml:"text_pass_psms"`
	RefineLookbackSeconds float64      `toml:"refine_lookback_seconds"`
	RefineChain           []RefineStep `toml:"refine_chain"`

	SampleRate             int     `toml:"sample_rate"`
	WindowSize             int     `toml:"window_size"`
	HopSize                int     `toml:"hop_size"`
	SmoothingSeconds       float64 `toml:"smoothing_seconds"`
	MinSilenceSeconds      float64 `toml:"min_silence_seconds"`
	EnergyThreshold        float64 `toml:"energy_threshold"`
	AdaptiveRatio          float64 `toml:"adaptive_ratio"`
	FloorRatio             float64 `toml:"floor_ratio"`
	SilenceLookbackSeconds float64 `toml:"silence_lookback_seconds"`

	BlackSearchSeconds  float64 `toml:"black_search_seconds"`
	BrightnessThreshold int     `toml:"brightness_threshold"`
	DarkRatio           float64 `toml:"dark_ratio"`
	ThumbnailScale      string  `toml:"thumbnail_scale"`
}

// OCRCache controls the on-disk OCR result cache.
type OCRCache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Output contains configuration for exported songs.
type Output struct {
	Format string `toml:"format"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for livesplit.
//
// Configuration sections by subsystem:
//   - Paths: scratch, output, log and cache directories
//   - Tools: ffmpeg, ffprobe and tesseract binaries
//   - Analysis: text, frame, audio and black-frame pass tuning
//   - OCRCache: sqlite memoization of OCR output
//   - Output: exported media format
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Tools    Tools    `toml:"tools"`
	Analysis Analysis `toml:"analysis"`
	OCRCache OCRCache `toml:"ocr_cache"`
	Output   Output   `toml:"output"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/livesplit/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// Lists in the file replace the defaults instead of extending them.
		cfg.Analysis.TextPassPSMs = nil
		cfg.Analysis.RefineChain = nil

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("livesplit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the scratch, output, log and cache directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.OutputDir, c.Paths.LogDir, c.Paths.CacheDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "livesplit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/livesplit"
	}
	return filepath.Join(home, ".cache", "livesplit")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
