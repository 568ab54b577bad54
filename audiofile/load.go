package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep/mp3"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
)

// Errors returned when decoding audio files.
var (
	ErrUnsupportedFormat = errors.New("audiofile: unsupported file extension")
	ErrDecode            = errors.New("audiofile: could not decode audio")
	ErrNoAudio           = errors.New("audiofile: no audio samples")
)

// Load decodes the audio file at path into a mono Clip at the source's
// native sample rate. The container format is chosen by file extension;
// .wav, .flac and .mp3 are supported.
func Load(path string) (*Clip, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return loadWAV(path)
	case ".flac":
		return loadFLAC(path)
	case ".mp3":
		return loadMP3(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

func loadWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s: not a WAV stream", ErrDecode, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	channels := buf.Format.NumChannels
	rate := buf.Format.SampleRate
	bits := int(dec.BitDepth)
	if channels <= 0 || rate <= 0 || bits <= 0 {
		return nil, fmt.Errorf("%w: %s: invalid PCM format", ErrDecode, path)
	}

	samples := mixdownInts(buf.Data, channels, bits)
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAudio, path)
	}

	return &Clip{
		Samples:    samples,
		SampleRate: rate,
		Path:       path,
		Channels:   channels,
		BitDepth:   bits,
	}, nil
}

func loadFLAC(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: open %s: %w", path, err)
	}
	defer f.Close()

	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	bits := int(info.BitsPerSample)
	if channels <= 0 || bits <= 0 || info.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %s: invalid stream info", ErrDecode, path)
	}
	scale := 1 / float64(int(1)<<uint(bits-1))

	var samples []float64
	if n := info.NSamples; n > 0 {
		samples = make([]float64, 0, int(n))
	}
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
		}
		for i := range frame.Subframes[0].Samples {
			sum := 0.0
			for ch := 0; ch < channels; ch++ {
				sum += float64(frame.Subframes[ch].Samples[i])
			}
			samples = append(samples, sum/float64(channels)*scale)
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAudio, path)
	}

	return &Clip{
		Samples:    samples,
		SampleRate: int(info.SampleRate),
		Path:       path,
		Channels:   channels,
		BitDepth:   bits,
	}, nil
}

func loadMP3(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: open %s: %w", path, err)
	}

	// The decoder owns the file handle and closes it with the stream.
	stream, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	defer stream.Close()

	var samples []float64
	if n := stream.Len(); n > 0 {
		samples = make([]float64, 0, n)
	}
	frames := make([][2]float64, 4096)
	for {
		n, ok := stream.Stream(frames)
		for _, fr := range frames[:n] {
			samples = append(samples, (fr[0]+fr[1])/2)
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAudio, path)
	}

	return &Clip{
		Samples:    samples,
		SampleRate: int(format.SampleRate),
		Path:       path,
		Channels:   format.NumChannels,
		BitDepth:   format.Precision * 8,
	}, nil
}

// mixdownInts converts interleaved integer PCM to mono float64, averaging
// channels per frame and scaling by 1 << (bits - 1). A trailing partial
// frame is dropped.
func mixdownInts(data []int, channels, bits int) []float64 {
	frames := len(data) / channels
	scale := 1 / float64(int(1)<<uint(bits-1))

	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(data[i*channels+ch])
		}
		out[i] = sum / float64(channels) * scale
	}
	return out
}
