package ffprobe

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"livesplit/internal/frameindex"
	"livesplit/internal/media"
	"livesplit/internal/services"
)

// DefaultFPS is used when the stream reports no usable frame rate.
const DefaultFPS = 24

const stage = "probe"

// Info summarizes a probed input.
type Info struct {
	Duration  float64
	StartTime float64
	FPS       int
	Frames    *frameindex.Index
}

type summary struct {
	Streams []stream `json:"streams"`
	Format  format   `json:"format"`
}

type stream struct {
	RFrameRate string `json:"r_frame_rate"`
}

type format struct {
	Duration  string `json:"duration"`
	StartTime string `json:"start_time"`
}

// Probe inspects path with the ffprobe binary. A non-zero container start
// time is rejected because every timestamp downstream assumes the timeline
// begins at zero.
func Probe(ctx context.Context, runner media.Runner, binary, path string) (Info, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Info{}, services.Wrap(services.ErrValidation, stage, "probe", "empty input path", nil)
	}

	result, err := media.Exec(ctx, runner, stage, binary, []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate:format=duration,start_time",
		"-of", "json",
		path,
	})
	if err != nil {
		return Info{}, err
	}
	info, err := parseSummary(result.Stdout)
	if err != nil {
		return Info{}, err
	}
	if info.StartTime != 0 {
		return Info{}, services.Wrap(
			services.ErrValidation,
			stage,
			"start time",
			fmt.Sprintf("input starts at %.3fs; only zero-based timelines are supported", info.StartTime),
			nil,
		)
	}

	result, err = media.Exec(ctx, runner, stage, binary, []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "packet=pts_time,flags",
		"-of", "csv=print_section=0",
		path,
	})
	if err != nil {
		return Info{}, err
	}
	records, err := ParsePackets(result.Stdout)
	if err != nil {
		return Info{}, err
	}
	info.Frames = frameindex.New(records)
	return info, nil
}

func parseSummary(data []byte) (Info, error) {
	var parsed summary
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Info{}, services.Wrap(services.ErrExternalTool, stage, "parse", "decode ffprobe json", err)
	}
	duration := parseFloat(parsed.Format.Duration)
	if math.IsNaN(duration) || duration <= 0 {
		return Info{}, services.Wrap(
			services.ErrValidation,
			stage,
			"duration",
			fmt.Sprintf("unusable duration %q", parsed.Format.Duration),
			nil,
		)
	}
	start := parseFloat(parsed.Format.StartTime)
	if math.IsNaN(start) {
		start = 0
	}
	fps := DefaultFPS
	if len(parsed.Streams) > 0 {
		if rate, ok := parseRate(parsed.Streams[0].RFrameRate); ok {
			fps = rate
		}
	}
	return Info{Duration: duration, StartTime: start, FPS: fps}, nil
}

// parseRate rounds an ffprobe rational such as "30000/1001" to whole frames.
func parseRate(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	num, den, found := strings.Cut(value, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d := 1.0
	if found {
		d, err = strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
	}
	rate := int(math.Round(n / d))
	if rate <= 0 {
		return 0, false
	}
	return rate, true
}

// ParsePackets decodes "pts_time,flags" CSV rows. Rows without a timestamp
// are skipped; the result is sorted by presentation time since packets are
// listed in decode order.
func ParsePackets(data []byte) ([]frameindex.Record, error) {
	records := make([]frameindex.Record, 0, bytes.Count(data, []byte{'\n'})+1)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ts, flags, _ := strings.Cut(line, ",")
		value := parseFloat(ts)
		if ts == "" || math.IsNaN(value) {
			continue
		}
		records = append(records, frameindex.Record{
			Timestamp: value,
			Keyframe:  strings.Contains(flags, "K"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, stage, "parse", "read packet list", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp < records[j].Timestamp
	})
	return records, nil
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
