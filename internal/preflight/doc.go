// Package preflight provides readiness checks for the external tools and
// filesystem paths livesplit depends on.
//
// These checks run in two contexts:
//   - The split command calls RunAll before extracting frames so a
//     misconfigured host fails before any long ffmpeg run.
//   - The "livesplit doctor" command renders every result, including the
//     tool lookups from CheckTools.
package preflight
