package testsupport

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"livesplit/internal/imaging"
)

// WriteFile writes body to path, creating parent directories.
func WriteFile(t testing.TB, path, body string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WritePNG writes a small uniform gray PNG at path.
func WritePNG(t testing.TB, path string, level uint8) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := imaging.Save(path, img); err != nil {
		t.Fatalf("write png %s: %v", path, err)
	}
	return path
}
