// Package main hosts the avclapper CLI entrypoint and command graph.
//
// analyze correlates the transcribed sync tags of a recording session and
// prints the per-file offsets and scales; render turns the same solution into
// a script of avconv command lines; history and config inspect the run
// database and the configuration file. Input is the clapper line format or a
// YAML manifest, read from a file argument or stdin.
package main
