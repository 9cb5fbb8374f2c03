// Package boundary finds and refines song starts.
//
// Detection runs in passes over a single recording:
//   - TextPass scans one cropped frame per second for an artist overlay
//     carrying a catalog title and records the first frame of each title
//   - FramePass re-reads the seconds before each start at the native frame
//     rate, walks backward until the overlay disappears, and snaps the
//     earliest matching frame to the keyframe at or before it
//   - AudioPass pulls each start back to the closest preceding silence
//   - EndPass finds the first black frame near the end of the recording
//
// Refinement passes are best effort: a pass that finds nothing logs a
// warning and leaves the boundary where it was.
package boundary
