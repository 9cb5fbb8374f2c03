package main

import (
	"fmt"
	"math"
	"strconv"

	"livesplit/internal/setlist"
)

// formatClock renders seconds as m:ss.mmm, or h:mm:ss.mmm past an hour.
func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(math.Round(seconds * 1000))
	h := millis / 3_600_000
	m := millis / 60_000 % 60
	s := millis / 1000 % 60
	ms := millis % 1000
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
	}
	return fmt.Sprintf("%d:%02d.%03d", m, s, ms)
}

func timestampRows(timestamps []setlist.SongTimestamp) [][]string {
	rows := make([][]string, 0, len(timestamps))
	for i, ts := range timestamps {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			ts.Title,
			formatClock(ts.StartTime),
			formatClock(ts.EndTime),
			formatClock(ts.Duration),
		})
	}
	return rows
}

func renderTimestamps(timestamps []setlist.SongTimestamp) string {
	total := 0.0
	for _, ts := range timestamps {
		total += ts.Duration
	}
	return renderTable(
		[]string{"#", "Title", "Start", "End", "Duration"},
		timestampRows(timestamps),
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight},
		[]string{"", fmt.Sprintf("%d songs", len(timestamps)), "", "", formatClock(total)},
	)
}
