package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avclapper/internal/config"
	"avclapper/internal/logging"
	"avclapper/internal/records"
)

type stubSizer map[string]string

func (s stubSizer) FrameSize(_ context.Context, path string) (string, error) {
	if size, ok := s[path]; ok {
		return size, nil
	}
	return "", errors.New("no video stream")
}

func defaultOptions() Options {
	return OptionsFromConfig(config.Default().Render)
}

func session() []*records.File {
	return []*records.File{
		{
			Name:     "cam.mp4",
			Type:     records.FileVideo,
			Length:   60,
			Solution: records.Solution{Offset: 1.5, Scale: 1.001},
		},
		{
			Name:     "rec.wav",
			Type:     records.FileAudio,
			Length:   100,
			Solution: records.Solution{Offset: 0, Scale: 1},
		},
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestScriptGolden(t *testing.T) {
	r := New(defaultOptions(), stubSizer{"cam.mp4": "1920x1080"}, logging.NewNop())

	var buf bytes.Buffer
	require.NoError(t, r.Script(context.Background(), &buf, session()))
	newGoldie(t).Assert(t, "script", buf.Bytes())
}

func TestScriptWithoutAudioGolden(t *testing.T) {
	opts := defaultOptions()
	opts.FallbackSize = "1280x720"
	files := []*records.File{
		{Name: "a.mp4", Type: records.FileVideo, Length: 30, Solution: records.Solution{Offset: 2, Scale: 1}},
		{Name: "b.mp4", Type: records.FileVideo, Length: 40, Solution: records.Solution{Offset: 0, Scale: 0.5}},
	}
	r := New(opts, nil, logging.NewNop())

	var buf bytes.Buffer
	require.NoError(t, r.Script(context.Background(), &buf, files))
	newGoldie(t).Assert(t, "video_only", buf.Bytes())
}

func TestDuration(t *testing.T) {
	assert.InDelta(t, 100.0, Duration(session()), 1e-9)
	assert.Zero(t, Duration(nil))
}

func TestScriptFailsWithoutFrameSize(t *testing.T) {
	r := New(defaultOptions(), stubSizer{}, logging.NewNop())
	err := r.Script(context.Background(), &bytes.Buffer{}, session())
	require.ErrorIs(t, err, ErrNoFrameSize)
	assert.Contains(t, err.Error(), "cam.mp4")
}

func TestScriptFallbackPreferredOverProbedSibling(t *testing.T) {
	opts := defaultOptions()
	opts.FallbackSize = "640x480"
	r := New(opts, stubSizer{"cam.mp4": "1920x1080"}, logging.NewNop())

	var buf bytes.Buffer
	require.NoError(t, r.Script(context.Background(), &buf, session()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "color=size=1920x1080")
	assert.Contains(t, lines[3], "color=size=640x480")
}

func TestScriptRejectsEmptyRun(t *testing.T) {
	r := New(defaultOptions(), nil, nil)
	assert.Error(t, r.Script(context.Background(), &bytes.Buffer{}, nil))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sync.sh")
	r := New(defaultOptions(), stubSizer{"cam.mp4": "1920x1080"}, logging.NewNop())

	require.NoError(t, r.WriteFile(context.Background(), path, session()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100, "script should be executable")

	err = r.WriteFile(context.Background(), filepath.Join(dir, "missing", "sync.sh"), session())
	assert.Error(t, err)
}
