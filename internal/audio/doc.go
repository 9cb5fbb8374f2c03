// Package audio finds the quiet gaps between songs.
//
// The waveform is decoded from a mono PCM WAV, reduced to a windowed RMS
// energy profile, smoothed with a centered moving average and scanned for
// runs below an adaptive threshold. Each long enough run is a Silence whose
// midpoint is the candidate cut.
package audio
