// Package preflight checks the filesystem paths and external binaries
// avclapper relies on.
//
// "avclapper config validate" runs RunAll and prints the results; the render
// command calls CheckDirectoryAccess on the script's directory before
// probing any media.
package preflight
