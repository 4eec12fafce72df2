// Package config loads, normalizes, and validates avclapper configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the AVCLAPPER_FFPROBE environment
// fallback. Settings cover output paths, logging, render-script generation and
// the run history database.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
