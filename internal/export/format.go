package export

import (
	"fmt"
	"strings"

	"livesplit/internal/services"
)

// Format selects which files are written per song.
type Format string

const (
	FormatVideo Format = "video"
	FormatAudio Format = "audio"
	FormatBoth  Format = "both"
)

// ParseFormat accepts video, audio or both, case-insensitively.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatVideo, FormatAudio, FormatBoth:
		return f, nil
	case "":
		return FormatBoth, nil
	}
	return "", services.Wrap(services.ErrValidation, "export", "output format", fmt.Sprintf("unknown output format %q (want video, audio or both)", value), nil)
}

// Video reports whether mp4 files are written.
func (f Format) Video() bool { return f == FormatVideo || f == FormatBoth }

// Audio reports whether m4a files are written.
func (f Format) Audio() bool { return f == FormatAudio || f == FormatBoth }
