// Package records holds the in-memory data model shared by every analysis
// phase: media files, their timestamped tags and cut markers, the sync groups
// the correlator builds, and the per-file solution the solver writes back.
//
// Store is the only registry. It is keyed by filename, first registration
// wins, and Files() always enumerates in filename order so variable
// allocation and equation order are reproducible across runs.
package records
