package workdir

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"livesplit/internal/fileutil"
	"livesplit/internal/logging"
	"livesplit/internal/services"
)

const (
	lockName  = "livesplit.lock"
	runPrefix = "run-"
)

// Run is a locked scratch directory for one split.
type Run struct {
	Root   string
	ID     string
	Dir    string
	lock   *flock.Flock
	logger *slog.Logger
}

// Acquire locks root and prepares a fresh run directory for runID.
func Acquire(root, runID string, logger *slog.Logger) (*Run, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, services.Wrap(services.ErrConfiguration, "workdir", "acquire", "work directory is not configured", nil)
	}
	if strings.TrimSpace(runID) == "" {
		return nil, services.Wrap(services.ErrValidation, "workdir", "acquire", "run id is empty", nil)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}

	lockPath := filepath.Join(root, lockName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "workdir", "acquire", fmt.Sprintf("another split is using %s", root), nil)
	}

	run := &Run{
		Root:   root,
		ID:     runID,
		Dir:    filepath.Join(root, runPrefix+runID),
		lock:   lock,
		logger: logging.NewComponentLogger(logger, "workdir"),
	}
	if err := fileutil.OverwriteDir(run.Dir); err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("prepare run dir: %w", err)
	}
	for _, sub := range []string{run.FramesDir(), run.RefineDir(), run.EndDir(), run.AudioDir()} {
		if err := os.MkdirAll(sub, 0o755); err != nil {
			_ = lock.Unlock()
			return nil, fmt.Errorf("create %s: %w", filepath.Base(sub), err)
		}
	}
	run.logger.Debug("work directory ready",
		logging.String("path", run.Dir),
		logging.String("lock", lockPath),
	)
	return run, nil
}

// FramesDir holds the coarse one-per-second stills.
func (r *Run) FramesDir() string { return filepath.Join(r.Dir, "frames") }

// RefineDir holds per-song windows for the frame pass.
func (r *Run) RefineDir() string { return filepath.Join(r.Dir, "refined") }

// EndDir holds thumbnails scanned for the final black frame.
func (r *Run) EndDir() string { return filepath.Join(r.Dir, "end") }

// AudioDir holds the extracted waveform.
func (r *Run) AudioDir() string { return filepath.Join(r.Dir, "audio") }

// WaveformPath is where the mono waveform is written.
func (r *Run) WaveformPath() string { return filepath.Join(r.AudioDir(), "waveform.wav") }

// Release removes the run directory unless keep is set and unlocks the root.
func (r *Run) Release(keep bool) error {
	if r == nil || r.lock == nil {
		return nil
	}
	var removeErr error
	if !keep {
		removeErr = os.RemoveAll(r.Dir)
		if removeErr != nil {
			logging.WarnWithContext(r.logger, "failed to remove run directory", "workdir_cleanup_failed",
				logging.String("path", r.Dir),
				logging.Error(removeErr),
				logging.String(logging.FieldErrorHint, "check work_dir permissions"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
		}
	} else {
		r.logger.Info("keeping work directory", logging.String("path", r.Dir))
	}
	if err := r.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	r.lock = nil
	return removeErr
}
