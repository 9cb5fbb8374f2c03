// Package ffprobe reads the timeline facts the splitter needs from a media
// file: container duration and start offset, the rounded video frame rate,
// and the per-packet keyframe layout of the primary video stream.
//
// Primary entry point:
//   - Probe: runs ffprobe twice (stream/format summary, packet list) and
//     returns an Info with a frameindex.Index built from the packets
package ffprobe
