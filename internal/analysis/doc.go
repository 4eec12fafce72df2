// Package analysis runs one synchronization pass over a records.Store:
// correlate tags, build the linear system, solve it and normalize offsets.
//
// Analyzer owns the construction order and the per-run logging. A run that
// cannot be solved still returns its correlation so callers can show which
// sync groups were found.
package analysis
