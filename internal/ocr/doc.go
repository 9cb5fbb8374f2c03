// Package ocr recognizes text in extracted frames and turns the raw output
// into the line list and overlay flag the title matcher consumes.
//
// Engine is the recognition seam; Tesseract drives the tesseract binary.
// The cache subpackage memoizes any Engine in SQLite.
package ocr
