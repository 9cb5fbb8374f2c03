package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"livesplit/internal/fileutil"
	"livesplit/internal/textutil"
)

// AnalysisImages copies confirming frames to
// <Dir>/<stage>_<title>_<frame>.png.
type AnalysisImages struct {
	Dir string

	once sync.Once
	err  error
}

// Record implements boundary.ImageRecorder.
func (a *AnalysisImages) Record(stage, title string, frame int, path string) error {
	a.once.Do(func() {
		a.err = os.MkdirAll(a.Dir, 0o755)
	})
	if a.err != nil {
		return fmt.Errorf("create analysis dir: %w", a.err)
	}
	name := stage + "_" + textutil.SanitizeFileName(title) + "_" + strconv.Itoa(frame) + ".png"
	if err := fileutil.CopyFile(path, filepath.Join(a.Dir, name)); err != nil {
		return fmt.Errorf("copy matched frame: %w", err)
	}
	return nil
}
