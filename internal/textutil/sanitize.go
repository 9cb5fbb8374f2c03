package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with underscores.
var fileNameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	"\x00", "_",
)

// SanitizeFileName makes a song title safe to use as a file name. Unsafe
// characters become underscores, runs of underscores collapse to one, and
// surrounding whitespace and dots are trimmed. Empty results become "untitled".
func SanitizeFileName(name string) string {
	out := fileNameReplacer.Replace(name)
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	out = strings.Trim(out, " \t\r\n.")
	if out == "" {
		return "untitled"
	}
	return out
}
