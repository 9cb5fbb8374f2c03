// Package titlematch decides whether recognized overlay text names a setlist
// title or the performing artist.
//
// Title matching tries containment, a length-adjusted weighted edit distance
// and a prefix fallback against each OCR line and each pair of adjacent
// lines. Artist detection is a looser, space-insensitive comparison against
// the first line only; a positive result marks the frame as a title card.
package titlematch
