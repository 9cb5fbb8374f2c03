package config

// PSMDefault leaves page segmentation to the OCR engine.
const PSMDefault = -1

const (
	defaultWorkDir   = "~/.local/share/livesplit/work"
	defaultOutputDir = "."
	defaultLogDir    = "~/.local/share/livesplit/logs"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultFFmpeg    = "ffmpeg"
	defaultFFprobe   = "ffprobe"
	defaultTesseract = "tesseract"

	defaultOutputFormat = "both"
	defaultOCRCacheName = "ocr_cache.db"

	defaultCropFilter          = "scale=400:200,crop=iw/1.5:ih/4:0:160"
	defaultHighContrastFilter  = "format=gray,maskfun=low=128:high=128:fill=0:sum=128"
	defaultHighContrastPercent = 65
	defaultCoarseFPS           = 1
	defaultMinSongSeconds      = 30
	defaultRefineLookback      = 3

	defaultSampleRate        = 44100
	defaultWindowSize        = 4096
	defaultHopSize           = 1024
	defaultSmoothingSeconds  = 0.5
	defaultMinSilenceSeconds = 2.0
	defaultEnergyThreshold   = 0.005
	defaultAdaptiveRatio     = 0.25
	defaultFloorRatio        = 0.1
	defaultSilenceLookback   = 3

	defaultBlackSearchSeconds  = 40
	defaultBrightnessThreshold = 25
	defaultDarkRatio           = 0.80
	defaultThumbnailScale      = "200:100"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			CacheDir:  defaultCacheDir(),
		},
		Tools: Tools{
			FFmpeg:    defaultFFmpeg,
			FFprobe:   defaultFFprobe,
			Tesseract: defaultTesseract,
		},
		Analysis: DefaultAnalysis(),
		OCRCache: OCRCache{
			Enabled: true,
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultAnalysis returns the tuning constants the passes were calibrated with.
func DefaultAnalysis() Analysis {
	return Analysis{
		CropFilter:            defaultCropFilter,
		HighContrastFilter:    defaultHighContrastFilter,
		HighContrastPercent:   defaultHighContrastPercent,
		CoarseFPS:             defaultCoarseFPS,
		MinSongSeconds:        defaultMinSongSeconds,
		TextPassPSMs:          []int{11, PSMDefault, 6},
		RefineLookbackSeconds: defaultRefineLookback,
		RefineChain: []RefineStep{
			{Weights: "stingy", PSM: 11},
			{Weights: "stingy", PSM: PSMDefault},
			{Weights: "greedy", PSM: 6},
			{Weights: "greedy", PSM: 12},
			{Weights: "greedy", PSM: 10},
		},
		SampleRate:             defaultSampleRate,
		WindowSize:             defaultWindowSize,
		HopSize:                defaultHopSize,
		SmoothingSeconds:       defaultSmoothingSeconds,
		MinSilenceSeconds:      defaultMinSilenceSeconds,
		EnergyThreshold:        defaultEnergyThreshold,
		AdaptiveRatio:          defaultAdaptiveRatio,
		FloorRatio:             defaultFloorRatio,
		SilenceLookbackSeconds: defaultSilenceLookback,
		BlackSearchSeconds:     defaultBlackSearchSeconds,
		BrightnessThreshold:    defaultBrightnessThreshold,
		DarkRatio:              defaultDarkRatio,
		ThumbnailScale:         defaultThumbnailScale,
	}
}
