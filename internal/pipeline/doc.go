// Package pipeline runs a full split of one concert recording: probe,
// detect or load song boundaries, refine them against frames and audio,
// persist the timestamps next to the setlist, and export each song.
//
// Every run gets a uuid correlation ID carried on the context so the log
// lines of one split can be grepped out of a shared log file.
package pipeline
