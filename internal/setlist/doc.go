// Package setlist loads and saves the concert record: artist and show
// metadata, the ordered song catalog, and the per-song timestamps computed
// by an earlier run.
//
// Setlists are JSON, or YAML when the file extension is .yaml or .yml. Saved
// setlists are always JSON and double as the timestamp cache that lets a
// later run skip detection.
package setlist
