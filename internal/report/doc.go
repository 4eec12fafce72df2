// Package report turns an analysis result into the tool's output contract:
// the sync table, the per-file solution table and the per-sync deviation
// statistics. Reports render as text tables, JSON or YAML.
package report
