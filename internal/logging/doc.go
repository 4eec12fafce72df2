// Package logging assembles the structured slog loggers used across
// avclapper.
//
// It owns the console and JSON handlers, level parsing and output routing,
// and exposes attribute helpers plus context-aware fields so every line of a
// run carries its run ID. A no-op logger is provided for tests and for wiring
// code that cannot fail.
//
// Console output defaults to stderr; stdout is reserved for reports and
// render scripts.
package logging
