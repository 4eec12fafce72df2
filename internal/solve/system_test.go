package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avclapper/internal/records"
)

func TestBuildAllocatesVariablesInFileOrder(t *testing.T) {
	store := records.NewStore()
	ref, _ := store.Register("a.wav", records.FileAudio)
	audio, _ := store.Register("b.wav", records.FileAudio)
	video, _ := store.Register("c.mp4", records.FileVideo)
	known, _ := store.Register("d.mp4", records.FileVideo)
	known.Scale = 1.001

	sys, err := Build(store.Files(), nil)
	require.NoError(t, err)

	assert.Same(t, ref, sys.Reference)
	refOffset, refScale := sys.VariablesOf(ref)
	assert.Nil(t, refOffset)
	assert.Nil(t, refScale)

	off, scale := sys.VariablesOf(audio)
	require.NotNil(t, off)
	assert.Nil(t, scale, "audio files run at scale one")
	assert.Equal(t, 0, off.Index)

	off, scale = sys.VariablesOf(video)
	require.NotNil(t, off)
	require.NotNil(t, scale)
	assert.Equal(t, 1, off.Index)
	assert.Equal(t, 2, scale.Index)
	assert.Equal(t, KindScale, scale.Kind)

	off, scale = sys.VariablesOf(known)
	require.NotNil(t, scale)
	assert.Equal(t, 3, off.Index)
	assert.Equal(t, 4, scale.Index)

	assert.Equal(t, 5, sys.Cols())
	require.Equal(t, 1, sys.Rows(), "one constraint row for the known scale")
	assert.Equal(t, 1.0, sys.At(0, 4))
	assert.Equal(t, 1.001, sys.RHS(0))
}

func TestBuildKnownScaleOnReferenceAndAudio(t *testing.T) {
	store := records.NewStore()
	ref, _ := store.Register("a.mp4", records.FileVideo)
	ref.Scale = 0.999
	audio, _ := store.Register("b.wav", records.FileAudio)
	audio.Scale = 1.0

	sys, err := Build(store.Files(), nil)
	require.NoError(t, err)

	off, scale := sys.VariablesOf(ref)
	assert.Nil(t, off, "reference offset stays pinned")
	require.NotNil(t, scale)
	off, scale = sys.VariablesOf(audio)
	require.NotNil(t, off)
	require.NotNil(t, scale, "a known scale gives audio a constrained scale variable")
	assert.Equal(t, 2, sys.Rows())
}

func TestBuildPairCoefficients(t *testing.T) {
	store := records.NewStore()
	a, _ := store.Register("a.wav", records.FileAudio)
	b, _ := store.Register("b.wav", records.FileAudio)
	c, _ := store.Register("c.mp4", records.FileVideo)

	sync := &records.Sync{Text: "42"}
	require.NoError(t, sync.Add(a.AddTag(2, "42")))
	require.NoError(t, sync.Add(b.AddTag(3, "42")))
	require.NoError(t, sync.Add(c.AddTag(5, "42")))

	sys, err := Build(store.Files(), []*records.Sync{sync})
	require.NoError(t, err)
	require.Equal(t, 3, sys.Rows(), "C(3,2) pair rows")
	require.Equal(t, 3, sys.Cols())

	bOff, _ := sys.VariablesOf(b)
	cOff, cScale := sys.VariablesOf(c)

	// a (reference) vs b: -offset_b = -2 + 3
	assert.Equal(t, -1.0, sys.At(0, bOff.Index))
	assert.Equal(t, 0.0, sys.At(0, cOff.Index))
	assert.Equal(t, 1.0, sys.RHS(0))

	// a vs c: -offset_c - 5*scale_c = -2
	assert.Equal(t, -1.0, sys.At(1, cOff.Index))
	assert.Equal(t, -5.0, sys.At(1, cScale.Index))
	assert.Equal(t, -2.0, sys.RHS(1))

	// b vs c: offset_b - offset_c - 5*scale_c = -3
	assert.Equal(t, 1.0, sys.At(2, bOff.Index))
	assert.Equal(t, -1.0, sys.At(2, cOff.Index))
	assert.Equal(t, -5.0, sys.At(2, cScale.Index))
	assert.Equal(t, -3.0, sys.RHS(2))
}

func TestBuildRowCount(t *testing.T) {
	store := records.NewStore()
	var files []*records.File
	for _, name := range []string{"a.mp4", "b.mp4", "c.mp4", "d.mp4"} {
		f, _ := store.Register(name, records.FileVideo)
		files = append(files, f)
	}
	files[2].Scale = 1

	big := &records.Sync{Text: "1"}
	small := &records.Sync{Text: "2"}
	lone := &records.Sync{Text: "3"}
	for i, f := range files {
		require.NoError(t, big.Add(f.AddTag(float64(i), "1")))
	}
	require.NoError(t, small.Add(files[0].AddTag(9, "2")))
	require.NoError(t, small.Add(files[3].AddTag(8, "2")))
	require.NoError(t, lone.Add(files[1].AddTag(7, "3")))

	sys, err := Build(store.Files(), []*records.Sync{big, small, lone})
	require.NoError(t, err)
	assert.Equal(t, 1+6+1+0, sys.Rows())
}

func TestBuildRejectsForeignFile(t *testing.T) {
	store := records.NewStore()
	store.Register("a.wav", records.FileAudio)
	stray := &records.File{Name: "stray.mp4", Type: records.FileVideo}
	sync := &records.Sync{Text: "1"}
	require.NoError(t, sync.Add(stray.AddTag(1, "1")))

	_, err := Build(store.Files(), []*records.Sync{sync})
	require.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "offset", KindOffset.String())
	assert.Equal(t, "scale", KindScale.String())
}
