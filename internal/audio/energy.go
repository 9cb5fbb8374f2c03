package audio

import "math"

// Profile is a per-hop energy curve.
type Profile struct {
	Values []float64
	// FramesPerSecond is sampleRate / hop.
	FramesPerSecond float64
}

// Time converts a profile index to seconds.
func (p Profile) Time(i int) float64 {
	if p.FramesPerSecond <= 0 {
		return 0
	}
	return float64(i) / p.FramesPerSecond
}

// EnergyProfile computes the RMS of every full window of size samples,
// stepping by hop. A trailing partial window is dropped.
func EnergyProfile(samples []float64, sampleRate, window, hop int) Profile {
	p := Profile{}
	if hop > 0 {
		p.FramesPerSecond = float64(sampleRate) / float64(hop)
	}
	if window <= 0 || hop <= 0 || len(samples) < window {
		return p
	}
	p.Values = make([]float64, 0, (len(samples)-window)/hop+1)
	for start := 0; start+window <= len(samples); start += hop {
		sum := 0.0
		for _, s := range samples[start : start+window] {
			sum += s * s
		}
		p.Values = append(p.Values, math.Sqrt(sum/float64(window)))
	}
	return p
}

// Smooth returns the centered moving average of values with the given
// radius. The window shrinks at the edges rather than padding.
func Smooth(values []float64, radius int) []float64 {
	out := make([]float64, len(values))
	if radius <= 0 {
		copy(out, values)
		return out
	}
	prefix := make([]float64, len(values)+1)
	for i, v := range values {
		prefix[i+1] = prefix[i] + v
	}
	for i := range values {
		lo := max(0, i-radius)
		hi := min(len(values), i+radius+1)
		out[i] = (prefix[hi] - prefix[lo]) / float64(hi-lo)
	}
	return out
}

// AdaptiveThreshold scales the mean energy by ratio and clamps it to
// [floor*base, base].
func AdaptiveThreshold(values []float64, base, ratio, floor float64) float64 {
	if len(values) == 0 {
		return base
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	return min(max(mean*ratio, floor*base), base)
}
