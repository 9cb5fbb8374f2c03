package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

// Waveform is mono PCM normalized to [-1, 1].
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the waveform length in seconds.
func (w Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// DecodeFile reads a WAV file from disk.
func DecodeFile(path string) (Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return Waveform{}, fmt.Errorf("open waveform: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads PCM WAV data. Multi-channel input is averaged down to mono.
func Decode(r io.ReadSeeker) (Waveform, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return Waveform{}, fmt.Errorf("decode waveform: not a valid wav file")
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return Waveform{}, fmt.Errorf("decode waveform: %w", err)
	}

	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = int(decoder.BitDepth)
	}
	if depth <= 0 {
		depth = 16
	}
	scale := float64(int64(1) << (depth - 1))

	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 1 {
		channels = buf.Format.NumChannels
	}
	sampleRate := int(decoder.SampleRate)
	if buf.Format != nil && buf.Format.SampleRate > 0 {
		sampleRate = buf.Format.SampleRate
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += buf.Data[i*channels+c]
		}
		samples[i] = float64(sum) / float64(channels) / scale
	}
	return Waveform{Samples: samples, SampleRate: sampleRate}, nil
}
