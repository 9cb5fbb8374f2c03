// Package ffmpeg builds and runs the ffmpeg invocations used by the
// splitter: coarse title-region frames, native-rate refinement windows,
// end-of-show thumbnails, mono PCM waveforms and stream-copied song exports.
package ffmpeg
