package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"avclapper/internal/config"
	"avclapper/internal/logging"
	"avclapper/internal/preflight"
	"avclapper/internal/records"
)

// ErrNoFrameSize is returned when neither probing nor configuration yields a
// canvas size for a file.
var ErrNoFrameSize = errors.New("no frame size available")

// Options carries the tunables of the generated script.
type Options struct {
	FPS           int
	SampleRate    int
	Avconv        string
	VideoCodec    string
	AudioCodec    string
	Preset        string
	OutputPattern string
	// FallbackSize is used for files ffprobe cannot size.
	FallbackSize string
}

// OptionsFromConfig maps the [render] section onto Options.
func OptionsFromConfig(cfg config.Render) Options {
	return Options{
		FPS:           cfg.FPS,
		SampleRate:    cfg.SampleRate,
		Avconv:        cfg.Avconv,
		VideoCodec:    cfg.VideoCodec,
		AudioCodec:    cfg.AudioCodec,
		Preset:        cfg.Preset,
		OutputPattern: cfg.OutputPattern,
		FallbackSize:  cfg.FrameSize,
	}
}

// NewProbeSizer builds the ffprobe-backed sizer configured in cfg.
func NewProbeSizer(cfg config.Render) ProbeSizer {
	return ProbeSizer{
		Binary:  cfg.FFprobe,
		Timeout: time.Duration(cfg.ProbeTimeout) * time.Second,
	}
}

// Renderer produces command scripts.
type Renderer struct {
	opts   Options
	sizer  FrameSizer
	logger *slog.Logger
}

// New returns a renderer. A nil sizer means every file uses the fallback size.
func New(opts Options, sizer FrameSizer, logger *slog.Logger) *Renderer {
	return &Renderer{
		opts:   opts,
		sizer:  sizer,
		logger: logging.NewComponentLogger(logger, "render"),
	}
}

// Duration returns the common output length: the latest aligned end of any file.
func Duration(files []*records.File) float64 {
	duration := 0.0
	for _, file := range files {
		duration = math.Max(duration, file.Solution.Offset+file.Length*file.Solution.Scale)
	}
	return duration
}

// soundtrack returns the last AUDIO file in store order, or "null" at offset
// 0 when the run has none.
func soundtrack(files []*records.File) (string, float64) {
	name, offset := "null", 0.0
	for _, file := range files {
		if file.Type == records.FileAudio {
			name = file.Name
			offset = file.Solution.Offset
		}
	}
	return name, offset
}

// Script writes the command script for files, which must be solved and in
// store order.
func (r *Renderer) Script(ctx context.Context, w io.Writer, files []*records.File) error {
	if len(files) == 0 {
		return errors.New("render: no files")
	}
	sizes, err := r.frameSizes(ctx, files)
	if err != nil {
		return err
	}

	audioFile, audioOffset := soundtrack(files)
	duration := Duration(files)

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "FPS=%d SR=%d AVCONV=%s\n", r.opts.FPS, r.opts.SampleRate, r.opts.Avconv)
	for i, file := range files {
		b.WriteString(`$AVCONV -y`)
		fmt.Fprintf(&b, ` -i "%s"`, file.Name)
		switch file.Type {
		case records.FileAudio:
			fmt.Fprintf(&b, ` -filter_complex "color=size=%s[bk]; [0:v]setpts=%f/TB+PTS-STARTPTS[dv]; [0:a]asetpts=%f*SR+PTS-STARTPTS,aformat=s16:$SR:stereo[oa]; [bk][dv]overlay,fps=$FPS[ov]" -map "[ov]" -map "[oa]"`,
				sizes[i], file.Solution.Offset, file.Solution.Offset)
		case records.FileVideo:
			fmt.Fprintf(&b, ` -i "%s" -filter_complex "color=size=%s[bk]; [0:v]setpts=%f/TB+(PTS-STARTPTS)*%f[dv]; [1:a]asetpts=%f*SR+PTS-STARTPTS,aformat=s16:$SR:stereo[oa]; [bk][dv]overlay,fps=$FPS[ov]" -map "[ov]" -map "[oa]"`,
				audioFile, sizes[i], file.Solution.Offset, file.Solution.Scale, audioOffset)
		}
		fmt.Fprintf(&b, " -c:v %s -c:a %s -preset %s -t %.2f %s\n",
			r.opts.VideoCodec, r.opts.AudioCodec, r.opts.Preset, duration, fmt.Sprintf(r.opts.OutputPattern, i))
	}

	r.logger.Info("render script generated",
		logging.Int("commands", len(files)),
		logging.String("soundtrack", audioFile),
		logging.Float64("duration", duration),
	)
	_, err = io.WriteString(w, b.String())
	return err
}

// WriteFile writes the script to path with execute permission after checking
// that its directory is writable.
func (r *Renderer) WriteFile(ctx context.Context, path string, files []*records.File) error {
	dir := filepath.Dir(path)
	if check := preflight.CheckDirectoryAccess("Script directory", dir); !check.Passed {
		return fmt.Errorf("render: %s", check.Detail)
	}

	var b strings.Builder
	if err := r.Script(ctx, &b, files); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		return fmt.Errorf("render: write script: %w", err)
	}
	return nil
}

// frameSizes resolves one canvas size per file: the probed size, then the
// configured fallback, then the first size probed from any other file.
func (r *Renderer) frameSizes(ctx context.Context, files []*records.File) ([]string, error) {
	sizes := make([]string, len(files))
	first := ""
	for i, file := range files {
		if r.sizer == nil {
			break
		}
		size, err := r.sizer.FrameSize(ctx, file.Name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("render: %w", ctxErr)
			}
			r.logger.Debug("frame size probe failed",
				logging.String("file", file.Name),
				logging.Error(err),
			)
			continue
		}
		sizes[i] = size
		if first == "" {
			first = size
		}
	}

	for i, file := range files {
		if sizes[i] != "" {
			continue
		}
		switch {
		case r.opts.FallbackSize != "":
			sizes[i] = r.opts.FallbackSize
		case first != "":
			sizes[i] = first
		default:
			return nil, fmt.Errorf("render: %s: %w", file.Name, ErrNoFrameSize)
		}
		r.logger.Warn("using substitute frame size",
			logging.String("file", file.Name),
			logging.String("size", sizes[i]),
		)
	}
	return sizes, nil
}
