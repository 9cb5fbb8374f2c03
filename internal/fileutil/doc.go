// Package fileutil holds small filesystem helpers shared by the export and
// work-directory code.
package fileutil
