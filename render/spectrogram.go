package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/eligwz/spectrogram"
)

const (
	defaultSpectrogramWidth  = 2048
	defaultSpectrogramHeight = 512
)

// SpectrogramOption configures SpectrogramPNG.
type SpectrogramOption func(*spectrogramConfig)

type spectrogramConfig struct {
	width  int
	height int
}

// WithSize sets the image dimensions in pixels. The default is 2048x512.
func WithSize(width, height int) SpectrogramOption {
	return func(c *spectrogramConfig) {
		c.width = width
		c.height = height
	}
}

// SpectrogramPNG renders a time-frequency heat map of samples into a PNG
// at path. Columns are Hamming-windowed FFT frames over the signal; rows
// span frequency up to Nyquist.
func SpectrogramPNG(path string, samples []float64, sampleRate int, opts ...SpectrogramOption) error {
	if sampleRate <= 0 {
		return fmt.Errorf("render: sample rate must be positive: %d", sampleRate)
	}

	cfg := spectrogramConfig{
		width:  defaultSpectrogramWidth,
		height: defaultSpectrogramHeight,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return fmt.Errorf("render: spectrogram size must be positive: %dx%d", cfg.width, cfg.height)
	}
	if len(samples) < cfg.width {
		return fmt.Errorf("%w: %d samples cannot fill %d columns", ErrNoData, len(samples), cfg.width)
	}

	img := spectrogram.NewImage128(image.Rect(0, 0, cfg.width, cfg.height))
	background := image.NewUniform(spectrogram.ParseColor("000000"))
	draw.Draw(img, img.Bounds(), background, image.Point{}, draw.Src)

	spectrogram.Drawfft(img, samples, uint32(sampleRate), uint32(cfg.height),
		false, // Hamming window, not rectangular
		false, // FFT, not direct DFT
		true,  // magnitude
		false, // linear scale
	)

	if err := spectrogram.SavePng(img, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}
