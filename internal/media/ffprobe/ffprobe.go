package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideo is returned by FrameSize when a file carries no video stream
// with usable dimensions.
var ErrNoVideo = errors.New("no video stream with dimensions")

// Result is the subset of ffprobe output the tool relies on.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes one elementary stream.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Duration   string `json:"duration"`
	SampleRate string `json:"sample_rate"`
	FrameRate  string `json:"avg_frame_rate"`
}

// Format carries container-level metadata.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Inspect runs binary (default "ffprobe") on path and decodes its output.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect %s: %w: %s", path, err, strings.TrimSpace(string(output)))
	}
	return Parse(output)
}

// Parse decodes an ffprobe JSON document.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// FirstVideo returns the first video stream, if any.
func (r Result) FirstVideo() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// FrameSize returns the dimensions of the first video stream as "WxH".
func (r Result) FrameSize() (string, error) {
	stream, ok := r.FirstVideo()
	if !ok || stream.Width <= 0 || stream.Height <= 0 {
		return "", ErrNoVideo
	}
	return fmt.Sprintf("%dx%d", stream.Width, stream.Height), nil
}

// DurationSeconds returns the container duration, 0 when absent and NaN
// when unparsable.
func (r Result) DurationSeconds() float64 {
	cleaned := strings.TrimSpace(r.Format.Duration)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
