// Package textutil provides the string primitives shared by OCR matching and
// file export.
//
// The primary use cases are:
//   - Normalizing OCR lines and titles to lowercase alphanumerics
//   - Computing a weighted edit distance with a search ceiling
//   - Sanitizing titles for safe filesystem use
package textutil
