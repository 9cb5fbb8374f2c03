// Package assemble turns detected song starts into the contiguous segment
// list that covers a recording, checks it against the catalog and names
// each song by position.
package assemble
