package boundary

import (
	"log/slog"

	"livesplit/internal/assemble"
	"livesplit/internal/audio"
	"livesplit/internal/logging"
)

// AudioPass nudges song starts onto nearby silences.
type AudioPass struct {
	Lookback float64
	Logger   *slog.Logger
}

// Refine moves every start after the first to the latest silence midpoint
// in [start-Lookback, start), pulling the previous end with it, and pins
// the last song's end to duration.
func (p *AudioPass) Refine(segments []assemble.Segment, silences []audio.Silence, duration float64) []assemble.Segment {
	logger := logging.NewComponentLogger(p.Logger, "audio_pass")
	out := make([]assemble.Segment, len(segments))
	copy(out, segments)
	for i := 1; i < len(out); i++ {
		if !out[i].IsSong {
			continue
		}
		start := out[i].Start
		mid, ok := audio.LatestMidpointIn(silences, max(0, start-p.Lookback), start)
		if !ok {
			logger.Debug("no silence before song start",
				logging.String(logging.FieldSongTitle, out[i].Title),
				logging.Seconds(logging.FieldTimestamp, start),
			)
			continue
		}
		logger.Info("moved song start to silence",
			logging.String(logging.FieldSongTitle, out[i].Title),
			logging.Seconds("from", start),
			logging.Seconds("to", mid),
		)
		out[i].Start = mid
		out[i-1].End = mid
	}
	if n := len(out); n > 0 {
		out[n-1].End = duration
	}
	return out
}
