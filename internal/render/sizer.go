package render

import (
	"context"
	"time"

	"avclapper/internal/media/ffprobe"
)

// FrameSizer reports the picture size of a media file as "WxH".
type FrameSizer interface {
	FrameSize(ctx context.Context, path string) (string, error)
}

// ProbeSizer asks ffprobe for the first video stream's dimensions.
type ProbeSizer struct {
	Binary  string
	Timeout time.Duration
}

// FrameSize implements FrameSizer.
func (p ProbeSizer) FrameSize(ctx context.Context, path string) (string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	result, err := ffprobe.Inspect(ctx, p.Binary, path)
	if err != nil {
		return "", err
	}
	return result.FrameSize()
}
