package ffmpeg

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Metadata is the flat tag set written into every exported song.
type Metadata struct {
	Artist string
	Title  string
	Album  string
	Year   string
	Track  int
}

func (m Metadata) args() []string {
	tags := []struct {
		key   string
		value string
	}{
		{"artist", m.Artist},
		{"title", m.Title},
		{"album", m.Album},
		{"date", m.Year},
	}
	args := make([]string, 0, 10)
	for _, tag := range tags {
		if strings.TrimSpace(tag.value) == "" {
			continue
		}
		args = append(args, "-metadata", fmt.Sprintf("%s=%s", tag.key, tag.value))
	}
	if m.Track > 0 {
		args = append(args, "-metadata", "track="+strconv.Itoa(m.Track))
	}
	return args
}

// Clip describes one exported segment.
type Clip struct {
	Input    string
	Output   string
	Start    float64
	End      float64
	Metadata Metadata
}

// ExportVideo stream-copies [Start, End] into an mp4 container.
func (t *Tool) ExportVideo(ctx context.Context, clip Clip) error {
	args := []string{"-i", clip.Input, "-c", "copy"}
	args = append(args, FromTo(clip.Start, clip.End)...)
	args = append(args, clip.Metadata.args()...)
	args = append(args, "-y", clip.Output)
	return t.run(ctx, "export", args)
}

// ExportAudio copies only the audio stream of [Start, End].
func (t *Tool) ExportAudio(ctx context.Context, clip Clip) error {
	args := []string{"-i", clip.Input, "-vn", "-acodec", "copy", "-map", "0:a"}
	args = append(args, FromTo(clip.Start, clip.End)...)
	args = append(args, clip.Metadata.args()...)
	args = append(args, "-y", clip.Output)
	return t.run(ctx, "export", args)
}
