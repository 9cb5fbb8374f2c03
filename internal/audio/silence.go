package audio

import (
	"sort"

	"livesplit/internal/config"
)

// Silence is a run of the smoothed profile below the threshold.
type Silence struct {
	Start    float64
	End      float64
	Midpoint float64
}

// Length returns the span length in seconds.
func (s Silence) Length() float64 { return s.End - s.Start }

// FindSilences reports every maximal run of values strictly below threshold
// lasting at least minSeconds. A run still open at the end of the profile
// counts.
func FindSilences(p Profile, threshold, minSeconds float64) []Silence {
	minFrames := int(minSeconds * p.FramesPerSecond)
	var out []Silence
	emit := func(start, length int) {
		if length < minFrames || length == 0 {
			return
		}
		out = append(out, Silence{
			Start:    p.Time(start),
			End:      p.Time(start + length),
			Midpoint: p.Time(start + length/2),
		})
	}

	start, length := -1, 0
	for i, v := range p.Values {
		if v < threshold {
			if start < 0 {
				start = i
			}
			length++
			continue
		}
		if start >= 0 {
			emit(start, length)
			start, length = -1, 0
		}
	}
	if start >= 0 {
		emit(start, length)
	}
	return out
}

// Analysis is the result of scanning a waveform.
type Analysis struct {
	Profile   Profile
	Threshold float64
	Silences  []Silence
}

// Analyze runs the energy, smoothing, threshold and silence steps with the
// tuning in cfg.
func Analyze(w Waveform, cfg config.Analysis) Analysis {
	profile := EnergyProfile(w.Samples, w.SampleRate, cfg.WindowSize, cfg.HopSize)
	radius := int(cfg.SmoothingSeconds * profile.FramesPerSecond)
	profile.Values = Smooth(profile.Values, radius)
	threshold := AdaptiveThreshold(profile.Values, cfg.EnergyThreshold, cfg.AdaptiveRatio, cfg.FloorRatio)
	return Analysis{
		Profile:   profile,
		Threshold: threshold,
		Silences:  FindSilences(profile, threshold, cfg.MinSilenceSeconds),
	}
}

// LatestMidpointIn returns the last silence midpoint inside [from, to).
func LatestMidpointIn(silences []Silence, from, to float64) (float64, bool) {
	found := false
	best := 0.0
	for _, s := range silences {
		if s.Midpoint >= from && s.Midpoint < to && (!found || s.Midpoint > best) {
			best = s.Midpoint
			found = true
		}
	}
	return best, found
}

// LongestStarts picks song starts for a recording without any title
// overlays: zero plus the midpoints of the count-1 longest silences, in time
// order. Fewer silences yield fewer starts.
func LongestStarts(silences []Silence, count int) []float64 {
	if count <= 0 {
		return nil
	}
	ranked := make([]Silence, len(silences))
	copy(ranked, silences)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Length() > ranked[j].Length()
	})
	if len(ranked) > count-1 {
		ranked = ranked[:count-1]
	}
	starts := make([]float64, 0, len(ranked)+1)
	starts = append(starts, 0)
	for _, s := range ranked {
		if s.Midpoint > 0 {
			starts = append(starts, s.Midpoint)
		}
	}
	sort.Float64s(starts)
	return starts
}
