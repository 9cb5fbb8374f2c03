// Package deps resolves the external binaries livesplit needs (ffmpeg,
// ffprobe and tesseract) and reports which are missing.
package deps
