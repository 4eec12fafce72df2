// Package history persists analyze runs in a SQLite database.
//
// Each run gets a UUID and records the SHA-256 digest of its input, the
// correlation counts, the outcome and the per-file solutions. Writers take
// an advisory file lock next to the database so concurrent invocations do
// not interleave inserts and pruning.
package history
