// Package media wraps the external media tools (ffmpeg, ffprobe) the
// splitter drives.
//
// Runner abstracts process execution so probes and extractions can be
// exercised with scripted fakes. Subpackages:
//   - ffprobe: duration, frame rate and packet timeline of an input
//   - ffmpeg: frame, thumbnail, waveform and segment extraction
package media
