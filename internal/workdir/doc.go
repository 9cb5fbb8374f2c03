// Package workdir owns the scratch area used while splitting a recording.
//
// A single lock file guards the root so concurrent runs do not clobber each
// other's frames. Each run gets its own run-<id> directory, and stale run
// directories from crashed or interrupted splits are removed on the next
// acquire.
package workdir
