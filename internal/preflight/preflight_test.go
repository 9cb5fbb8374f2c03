package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"livesplit/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckFreeSpace("space", dir, 1); !result.Passed {
		t.Fatalf("expected pass with 1 byte minimum, got: %s", result.Detail)
	}
	result := CheckFreeSpace("space", dir, 1<<62)
	if result.Passed {
		t.Fatal("expected failure with huge minimum")
	}
	if !result.Advisory {
		t.Fatal("expected free space shortfall to be advisory")
	}
	if !strings.Contains(result.Detail, "below") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
	if result := CheckFreeSpace("space", filepath.Join(dir, "missing"), 1); result.Passed {
		t.Fatal("expected failure for missing path")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[uint64]string{512: "512 B", 2048: "2.0 KiB", 3 << 30: "3.0 GiB"}
	for in, want := range tests {
		if got := formatBytes(in); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_CacheGatedByConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.CacheDir = filepath.Join(t.TempDir(), "missing")
	cfg.OCRCache.Enabled = false

	results := RunAll(&cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Name == "Work directory space" {
			continue
		}
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}

	if failed := Failed([]Result{{Name: "space", Advisory: true}}); len(failed) != 0 {
		t.Fatalf("advisory results must not block, got %v", failed)
	}

	cfg.OCRCache.Enabled = true
	failed := Failed(RunAll(&cfg))
	found := false
	for _, r := range failed {
		if r.Name == "Cache directory" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected cache directory failure when cache is enabled")
	}
}

func TestCheckToolsReportsMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.FFmpeg = "definitely-missing-ffmpeg"
	cfg.Tools.FFprobe = "definitely-missing-ffprobe"
	cfg.Tools.Tesseract = "definitely-missing-tesseract"

	statuses := CheckTools(&cfg)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		if s.Available {
			t.Errorf("expected %s to be unavailable", s.Name)
		}
	}
}
