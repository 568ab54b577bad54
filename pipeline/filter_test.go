package pipeline

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/spectral/audiofile"
	"github.com/cwbudde/spectral/dsp/filter/design"
	"github.com/cwbudde/spectral/dsp/signal"
	"github.com/cwbudde/spectral/internal/testutil"
)

func TestFilterFileRemovesInBandTone(t *testing.T) {
	const rate = 44100
	dir := t.TempDir()
	in := filepath.Join(dir, "tone.wav")
	out := filepath.Join(dir, "clean.wav")

	src := testutil.DeterministicSine(1000, rate, 0.5, rate)
	require.NoError(t, audiofile.WriteWAV(in, src, rate))

	p, err := New()
	require.NoError(t, err)

	rep, err := p.FilterFile(in, out)
	require.NoError(t, err)

	assert.Equal(t, in, rep.Input)
	assert.Equal(t, out, rep.Output)
	assert.Equal(t, rate, rep.SampleRate)
	assert.Equal(t, rate, rep.Samples)
	assert.Equal(t, DefaultLowHz, rep.LowHz)
	assert.Equal(t, DefaultHighHz, rep.HighHz)
	assert.Equal(t, DefaultOrder, rep.Order)
	assert.False(t, rep.KeepBand)

	// 1 kHz sits inside the stop band: present before, crushed after.
	assert.InDelta(t, 0.5, rep.Pre.MagnitudeAt(1000), 1e-3)
	assert.Less(t, rep.Post.MagnitudeAt(1000), 0.05)
	assert.Equal(t, rep.Pre.Len(), rep.Post.Len())

	require.Len(t, rep.Probes, 3)
	assert.InDelta(t, 300, rep.Probes[0].FrequencyHz, 1e-9)
	assert.InDelta(t, math.Sqrt(300*5000), rep.Probes[1].FrequencyHz, 1e-9)
	assert.InDelta(t, 5000, rep.Probes[2].FrequencyHz, 1e-9)

	assert.False(t, rep.Limited)

	clip, err := audiofile.Load(out)
	require.NoError(t, err)
	assert.Equal(t, rate, clip.SampleRate)
	assert.Len(t, clip.Samples, rate)
	assert.LessOrEqual(t, clip.Peak(), 1.0)
}

func TestFilterFileAttenuatesBandCenter(t *testing.T) {
	const rate = 44100
	dir := t.TempDir()
	in := filepath.Join(dir, "center.wav")

	center := math.Sqrt(300 * 5000)
	src := testutil.DeterministicSine(center, rate, 0.5, rate)
	require.NoError(t, audiofile.WriteWAV(in, src, rate))

	p, err := New()
	require.NoError(t, err)

	rep, err := p.FilterFile(in, filepath.Join(dir, "out.wav"))
	require.NoError(t, err)

	require.Len(t, rep.Probes, 3)
	probe := rep.Probes[1]
	assert.InDelta(t, 0.5, probe.Before, 1e-2)
	assert.Less(t, probe.ChangeDB, -20.0)
}

func TestFilterFilePreservesOutOfBandTones(t *testing.T) {
	const rate = 44100
	dir := t.TempDir()
	in := filepath.Join(dir, "mix.wav")

	src := testutil.DeterministicSine(150, rate, 0.3, rate)
	high := testutil.DeterministicSine(10000, rate, 0.3, rate)
	for i := range src {
		src[i] += high[i]
	}
	require.NoError(t, audiofile.WriteWAV(in, src, rate))

	p, err := New()
	require.NoError(t, err)

	rep, err := p.FilterFile(in, filepath.Join(dir, "out.wav"))
	require.NoError(t, err)

	// Tones an octave outside the band pass through within 1 dB.
	for _, freq := range []float64{150, 10000} {
		pre := rep.Pre.MagnitudeAt(freq)
		post := rep.Post.MagnitudeAt(freq)
		require.Greater(t, pre, 0.25, "pre magnitude at %g Hz", freq)
		assert.InDelta(t, 1.0, post/pre, 0.12, "gain at %g Hz", freq)
	}
}

func TestFilterFileKeepBand(t *testing.T) {
	const rate = 44100
	dir := t.TempDir()
	in := filepath.Join(dir, "mix.wav")

	src := testutil.DeterministicSine(150, rate, 0.4, rate)
	band := testutil.DeterministicSine(1000, rate, 0.4, rate)
	for i := range src {
		src[i] += band[i]
	}
	require.NoError(t, audiofile.WriteWAV(in, src, rate))

	p, err := New(WithKeepBand(true))
	require.NoError(t, err)

	rep, err := p.FilterFile(in, filepath.Join(dir, "out.wav"))
	require.NoError(t, err)

	assert.True(t, rep.KeepBand)
	assert.InDelta(t, 0.4, rep.Post.MagnitudeAt(1000), 0.02)
	assert.Less(t, rep.Post.MagnitudeAt(150), 0.04)
}

func TestFilterFileLimitsPeak(t *testing.T) {
	const rate = 44100
	src := testutil.DeterministicSine(10000, rate, 1.3, 8192)

	var enc captureEncoder
	p, err := New(WithDecoder(fakeClip(src, rate)), WithEncoder(enc.encode))
	require.NoError(t, err)

	rep, err := p.FilterFile("loud.wav", "out.wav")
	require.NoError(t, err)

	assert.True(t, rep.Limited)
	assert.Greater(t, rep.Peak, 1.0)

	require.Equal(t, 1, enc.calls)
	assert.Equal(t, "out.wav", enc.path)
	assert.Equal(t, rate, enc.rate)
	assert.Len(t, enc.samples, len(src))
	assert.InDelta(t, 1.0, signal.PeakAbs(enc.samples), 1e-9)
}

func TestFilterFileDerivesOutputPath(t *testing.T) {
	src := testutil.DeterministicSine(440, 44100, 0.2, 4096)

	var enc captureEncoder
	p, err := New(WithDecoder(fakeClip(src, 44100)), WithEncoder(enc.encode))
	require.NoError(t, err)

	rep, err := p.FilterFile("music/song.mp3", "")
	require.NoError(t, err)

	assert.Equal(t, "music/song_filtered.wav", rep.Output)
	assert.Equal(t, rep.Output, enc.path)
}

func TestFilterFilePlotArtifact(t *testing.T) {
	dir := t.TempDir()
	plotPath := filepath.Join(dir, "compare.png")
	src := testutil.DeterministicSine(1000, 44100, 0.5, 8192)

	var enc captureEncoder
	p, err := New(
		WithDecoder(fakeClip(src, 44100)),
		WithEncoder(enc.encode),
		WithPlot(plotPath),
	)
	require.NoError(t, err)

	rep, err := p.FilterFile("tone.wav", "out.wav")
	require.NoError(t, err)
	assert.Equal(t, plotPath, rep.PlotPath)

	data, err := os.ReadFile(plotPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "plot is not a PNG")
}

func TestFilterFileDecodeErrorPropagates(t *testing.T) {
	p, err := New(WithDecoder(func(path string) (*audiofile.Clip, error) {
		return nil, audiofile.ErrDecode
	}))
	require.NoError(t, err)

	_, err = p.FilterFile("broken.wav", "out.wav")
	require.ErrorIs(t, err, audiofile.ErrDecode)
}

func TestFilterFileEncodeErrorPropagates(t *testing.T) {
	src := testutil.DeterministicSine(440, 44100, 0.2, 4096)
	p, err := New(
		WithDecoder(fakeClip(src, 44100)),
		WithEncoder(func(path string, samples []float64, sampleRate int) error {
			return errors.New("disk full")
		}),
	)
	require.NoError(t, err)

	_, err = p.FilterFile("tone.wav", "out.wav")
	require.ErrorContains(t, err, "disk full")
}

func TestFilterFileBandAboveNyquist(t *testing.T) {
	src := testutil.DeterministicSine(440, 8000, 0.2, 4096)
	p, err := New(WithDecoder(fakeClip(src, 8000)))
	require.NoError(t, err)

	// Default 5 kHz upper edge does not fit under a 4 kHz Nyquist.
	_, err = p.FilterFile("tone.wav", "out.wav")
	require.ErrorIs(t, err, design.ErrCutoff)
}
