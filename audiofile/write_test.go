package audiofile

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/spectral/internal/testutil"
)

func TestWriteWAVRoundTrip(t *testing.T) {
	const rate = 44100
	src := testutil.DeterministicSine(1000, rate, 0.5, rate/10)
	path := filepath.Join(t.TempDir(), "tone.wav")

	require.NoError(t, WriteWAV(path, src, rate))

	clip, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rate, clip.SampleRate)
	assert.Equal(t, 1, clip.Channels)
	assert.Equal(t, 16, clip.BitDepth)
	assert.Equal(t, path, clip.Path)
	require.Len(t, clip.Samples, len(src))

	for i := range src {
		require.InDelta(t, src[i], clip.Samples[i], 1e-3, "sample %d", i)
	}
}

func TestWriteWAVDitherRoundTrip(t *testing.T) {
	const rate = 8000
	src := testutil.DeterministicSine(440, rate, 0.3, 2000)
	path := filepath.Join(t.TempDir(), "dithered.wav")

	require.NoError(t, WriteWAV(path, src, rate, WithDither(1)))

	clip, err := Load(path)
	require.NoError(t, err)
	require.Len(t, clip.Samples, len(src))
	for i := range src {
		require.InDelta(t, src[i], clip.Samples[i], 1e-3, "sample %d", i)
	}
}

func TestWriteWAVDitherDeterminism(t *testing.T) {
	const rate = 8000
	src := testutil.DeterministicSine(440, rate, 0.3, 2000)
	dir := t.TempDir()

	pathA := filepath.Join(dir, "a.wav")
	pathB := filepath.Join(dir, "b.wav")
	pathC := filepath.Join(dir, "c.wav")
	require.NoError(t, WriteWAV(pathA, src, rate, WithDither(7)))
	require.NoError(t, WriteWAV(pathB, src, rate, WithDither(7)))
	require.NoError(t, WriteWAV(pathC, src, rate, WithDither(8)))

	bytesA, err := os.ReadFile(pathA)
	require.NoError(t, err)
	bytesB, err := os.ReadFile(pathB)
	require.NoError(t, err)
	bytesC, err := os.ReadFile(pathC)
	require.NoError(t, err)

	assert.Equal(t, bytesA, bytesB, "same seed must produce identical files")
	assert.NotEqual(t, bytesA, bytesC, "different seeds must dither differently")
}

func TestWriteWAVClampsRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hot.wav")
	require.NoError(t, WriteWAV(path, []float64{2, -2, 0}, 8000))

	clip, err := Load(path)
	require.NoError(t, err)
	require.Len(t, clip.Samples, 3)
	assert.InDelta(t, 1, clip.Samples[0], 1e-4)
	assert.InDelta(t, -1, clip.Samples[1], 1e-4)
	assert.InDelta(t, 0, clip.Samples[2], 1e-4)
	assert.LessOrEqual(t, clip.Peak(), 1.0)
}

func TestWriteWAVValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	require.ErrorIs(t, WriteWAV(path, nil, 44100), ErrNoAudio)
	require.Error(t, WriteWAV(path, []float64{0.1}, 0))

	assert.NoFileExists(t, path, "failed writes must not leave files behind")
}

func TestWriteWAVCreateFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.wav")

	err := WriteWAV(path, []float64{0.1, 0.2}, 8000)
	require.Error(t, err)
	require.ErrorIs(t, err, fs.ErrNotExist)
}
