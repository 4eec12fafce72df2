// Package render writes a shell script of avconv/ffmpeg command lines that
// composite every file of a solved run onto the common timeline.
//
// Each AUDIO file overlays its own picture on a black canvas shifted by its
// offset. Each VIDEO file is shifted and stretched by its solution and takes
// its sound from the last AUDIO file of the run. All outputs share the
// duration of the longest aligned file.
package render
