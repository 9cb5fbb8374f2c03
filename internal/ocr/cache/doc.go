// Package cache memoizes OCR output in SQLite, keyed by the SHA-256 of the
// image bytes and the page segmentation mode. Re-running a split over the
// same recording skips tesseract for every frame already seen.
package cache
