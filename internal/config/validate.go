package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.Analysis.Validate()
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "video", "audio", "both":
		return nil
	default:
		return fmt.Errorf("output.format must be one of video, audio, both (got %q)", c.Output.Format)
	}
}

// Validate rejects tuning values the passes cannot operate with.
func (a Analysis) Validate() error {
	if err := ensurePositiveMap(map[string]float64{
		"analysis.coarse_fps":               float64(a.CoarseFPS),
		"analysis.sample_rate":              float64(a.SampleRate),
		"analysis.window_size":              float64(a.WindowSize),
		"analysis.hop_size":                 float64(a.HopSize),
		"analysis.min_silence_seconds":      a.MinSilenceSeconds,
		"analysis.energy_threshold":         a.EnergyThreshold,
		"analysis.refine_lookback_seconds":  a.RefineLookbackSeconds,
		"analysis.silence_lookback_seconds": a.SilenceLookbackSeconds,
		"analysis.black_search_seconds":     a.BlackSearchSeconds,
	}); err != nil {
		return err
	}
	if a.MinSongSeconds < 0 {
		return errors.New("analysis.min_song_seconds must be >= 0")
	}
	if a.SmoothingSeconds < 0 {
		return errors.New("analysis.smoothing_seconds must be >= 0")
	}
	if a.HopSize > a.WindowSize {
		return errors.New("analysis.hop_size must not exceed analysis.window_size")
	}
	if err := ensureRatioMap(map[string]float64{
		"analysis.adaptive_ratio": a.AdaptiveRatio,
		"analysis.floor_ratio":    a.FloorRatio,
		"analysis.dark_ratio":     a.DarkRatio,
	}); err != nil {
		return err
	}
	if a.HighContrastPercent <= 0 || a.HighContrastPercent >= 100 {
		return errors.New("analysis.high_contrast_percent must be between 0 and 100")
	}
	if a.BrightnessThreshold < 0 || a.BrightnessThreshold > 255 {
		return errors.New("analysis.brightness_threshold must be between 0 and 255")
	}
	if len(a.TextPassPSMs) == 0 {
		return errors.New("analysis.text_pass_psms must include at least one mode")
	}
	if len(a.RefineChain) == 0 {
		return errors.New("analysis.refine_chain must include at least one step")
	}
	for i, step := range a.RefineChain {
		switch step.Weights {
		case "stingy", "greedy":
		default:
			return fmt.Errorf("analysis.refine_chain[%d].weights must be stingy or greedy (got %q)", i, step.Weights)
		}
	}
	return nil
}

func ensurePositiveMap(values map[string]float64) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

func ensureRatioMap(values map[string]float64) error {
	for key, value := range values {
		if value <= 0 || value > 1 {
			return fmt.Errorf("%s must be in (0, 1]", key)
		}
	}
	return nil
}
