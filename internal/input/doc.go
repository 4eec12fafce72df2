// Package input decodes clapper logs into a records.Store.
//
// Two encodings are understood. The line format is what the audio and video
// marker detectors print: a file header, then one "<timestamp> <text>" record
// per detected marker, optional SCALE and EOF records, and cut markers. The
// YAML manifest carries the same data for hand-written or edited logs.
//
// Malformed input fails with a *MalformedError that names the offending
// line; errors.Is(err, ErrMalformed) matches it.
package input
