package preflight

import (
	"livesplit/internal/config"
)

// Result reports the outcome of a single preflight check. Advisory
// failures are reported but do not block a split.
type Result struct {
	Name     string
	Passed   bool
	Advisory bool
	Detail   string
}

// RunAll checks every directory a split writes to. The OCR cache directory
// is only checked when the cache is enabled.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir),
		CheckFreeSpace("Work directory space", cfg.Paths.WorkDir, minWorkSpace),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
	}
	if cfg.OCRCache.Enabled {
		results = append(results, CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir))
	}
	return results
}

// Failed returns the blocking results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed && !r.Advisory {
			out = append(out, r)
		}
	}
	return out
}
