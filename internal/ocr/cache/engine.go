package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"livesplit/internal/logging"
	"livesplit/internal/ocr"
)

// Engine serves recognitions from the Store and falls through to the
// wrapped engine on a miss. Cache failures are logged and never fail a
// recognition.
type Engine struct {
	next   ocr.Engine
	store  *Store
	logger *slog.Logger

	hits   int
	misses int
}

// Wrap returns an ocr.Engine backed by store.
func Wrap(next ocr.Engine, store *Store, logger *slog.Logger) *Engine {
	return &Engine{
		next:   next,
		store:  store,
		logger: logging.NewComponentLogger(logger, "ocr_cache"),
	}
}

// Recognize implements ocr.Engine.
func (e *Engine) Recognize(ctx context.Context, imagePath string, psm int) (string, error) {
	hash, err := hashFile(imagePath)
	if err != nil {
		return "", err
	}
	text, ok, err := e.store.Get(ctx, hash, psm)
	if err != nil {
		logging.WarnWithContext(e.logger, "ocr cache lookup failed", "ocr_cache_read_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the cache database if it keeps failing"),
			logging.String(logging.FieldImpact, "frame is recognized again"),
		)
	} else if ok {
		e.hits++
		return text, nil
	}

	e.misses++
	text, err = e.next.Recognize(ctx, imagePath, psm)
	if err != nil {
		return "", err
	}
	if err := e.store.Put(ctx, hash, psm, text); err != nil {
		logging.WarnWithContext(e.logger, "ocr cache write failed", "ocr_cache_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "result is not reused on the next run"),
		)
	}
	return text, nil
}

// Stats returns hit and miss counts since construction.
func (e *Engine) Stats() (hits, misses int) {
	return e.hits, e.misses
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image for hashing: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash image: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

var _ ocr.Engine = (*Engine)(nil)
