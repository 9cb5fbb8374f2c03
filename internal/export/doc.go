// Package export writes each detected song out of the recording with
// stream copy and keeps optional copies of the frames that confirmed each
// title for later inspection.
package export
