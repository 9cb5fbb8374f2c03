package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const defaultFFprobe = "ffprobe"

// ResolveFFprobe picks the ffprobe binary to run. An explicitly configured
// binary wins. Otherwise an ffprobe sitting next to the resolved ffmpeg is
// preferred so both tools come from the same build, falling back to the
// bare name for PATH lookup.
func ResolveFFprobe(ffmpegCommand, ffprobeCommand string) string {
	configured := strings.TrimSpace(ffprobeCommand)
	if configured != "" && configured != defaultFFprobe {
		return configured
	}
	ffmpegBinary := strings.TrimSpace(ffmpegCommand)
	if ffmpegBinary != "" {
		if resolved, err := exec.LookPath(ffmpegBinary); err == nil {
			candidate := sidecarCandidate(resolved, defaultFFprobe)
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				return candidate
			}
		}
	}
	return defaultFFprobe
}

func sidecarCandidate(toolPath, name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(toolPath), name)
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
