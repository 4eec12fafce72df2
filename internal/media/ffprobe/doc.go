// Package ffprobe runs ffprobe against recordings and decodes the JSON it
// prints. Render uses it to learn the picture size of each video so the
// black canvas under the overlay matches.
package ffprobe
