package audiofile

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth = 16
	wavPCM      = 1
)

// WriteOption configures WriteWAV.
type WriteOption func(*writeConfig)

type writeConfig struct {
	dither     bool
	ditherSeed uint64
}

// WithDither adds triangular dither of one least significant bit before
// quantization, decorrelating the rounding error from the signal. The
// seed makes the noise reproducible.
func WithDither(seed uint64) WriteOption {
	return func(c *writeConfig) {
		c.dither = true
		c.ditherSeed = seed
	}
}

// WriteWAV encodes samples as mono 16-bit PCM WAV at the given rate.
// Samples are clamped to [-1, 1] before quantization.
func WriteWAV(path string, samples []float64, sampleRate int, opts ...WriteOption) error {
	if len(samples) == 0 {
		return fmt.Errorf("%w: nothing to write", ErrNoAudio)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("audiofile: sample rate must be positive: %d", sampleRate)
	}

	var cfg writeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: create %s: %w", path, err)
	}

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, 1, wavPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           quantize16(samples, cfg),
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("audiofile: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("audiofile: finalize %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("audiofile: close %s: %w", path, err)
	}
	return nil
}

// quantize16 maps float samples to 16-bit integer codes. The half-LSB
// offset in the scale factor makes the floor symmetric around zero, so
// full-scale +1 and -1 land on 32767 and -32768.
func quantize16(samples []float64, cfg writeConfig) []int {
	var rng *rand.Rand
	if cfg.dither {
		rng = rand.New(rand.NewPCG(cfg.ditherSeed, cfg.ditherSeed))
	}

	const bitMul = 1<<(wavBitDepth-1) - 0.5
	data := make([]int, len(samples))
	for i, v := range samples {
		v = math.Max(-1, math.Min(1, v))
		scaled := v * bitMul
		if rng != nil {
			scaled += rng.Float64() - rng.Float64()
		}
		q := int(math.Floor(scaled))
		data[i] = max(-1<<(wavBitDepth-1), min(1<<(wavBitDepth-1)-1, q))
	}
	return data
}
