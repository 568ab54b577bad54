package pipeline

import (
	"fmt"

	"github.com/cwbudde/spectral/audiofile"
	"github.com/cwbudde/spectral/dsp/spectrum"
	"github.com/cwbudde/spectral/render"
)

// Default band-stop parameters, chosen to cover the dominant vocal range.
const (
	DefaultLowHz  = 300.0
	DefaultHighHz = 5000.0
	DefaultOrder  = 8
)

// Decoder loads an audio file into a mono clip.
type Decoder func(path string) (*audiofile.Clip, error)

// Encoder persists samples as an audio file.
type Encoder func(path string, samples []float64, sampleRate int) error

// SpectrumRenderer draws labeled spectra into a PNG.
type SpectrumRenderer func(path string, series []render.Series, opts ...render.PlotOption) error

// SpectrogramRenderer draws a signal heat map into a PNG.
type SpectrogramRenderer func(path string, samples []float64, sampleRate int, opts ...render.SpectrogramOption) error

// CSVWriter exports spectrum bins.
type CSVWriter func(path string, sp spectrum.Spectrum) error

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	lowHz    float64
	highHz   float64
	order    int
	keepBand bool

	dither     bool
	ditherSeed uint64

	welch  bool
	smooth int

	plotPath        string
	spectrogramPath string
	csvPath         string

	decode            Decoder
	encode            Encoder
	renderSpectrum    SpectrumRenderer
	renderSpectrogram SpectrogramRenderer
	writeCSV          CSVWriter
}

func defaultConfig() config {
	return config{
		lowHz:             DefaultLowHz,
		highHz:            DefaultHighHz,
		order:             DefaultOrder,
		decode:            audiofile.Load,
		renderSpectrum:    render.SpectrumPNG,
		renderSpectrogram: render.SpectrogramPNG,
		writeCSV:          render.SpectrumCSV,
	}
}

// WithBand sets the filter band edges in Hz.
func WithBand(lowHz, highHz float64) Option {
	return func(c *config) {
		c.lowHz = lowHz
		c.highHz = highHz
	}
}

// WithOrder sets the Butterworth filter order.
func WithOrder(order int) Option {
	return func(c *config) { c.order = order }
}

// WithKeepBand inverts the filter: the band is kept (band-pass) instead
// of cut (band-stop).
func WithKeepBand(keep bool) Option {
	return func(c *config) { c.keepBand = keep }
}

// WithDither adds seeded triangular dither when writing filtered audio.
func WithDither(seed uint64) Option {
	return func(c *config) {
		c.dither = true
		c.ditherSeed = seed
	}
}

// WithWelch switches analysis to the segment-averaged spectrum estimate.
func WithWelch(enabled bool) Option {
	return func(c *config) { c.welch = enabled }
}

// WithSmoothing applies 1/fraction-octave smoothing to analyzed spectra.
// Zero disables smoothing.
func WithSmoothing(fraction int) Option {
	return func(c *config) { c.smooth = fraction }
}

// WithPlot writes a spectrum plot PNG to path during runs.
func WithPlot(path string) Option {
	return func(c *config) { c.plotPath = path }
}

// WithSpectrogram writes a spectrogram PNG to path during analysis.
func WithSpectrogram(path string) Option {
	return func(c *config) { c.spectrogramPath = path }
}

// WithCSV exports the analyzed spectrum to path as CSV.
func WithCSV(path string) Option {
	return func(c *config) { c.csvPath = path }
}

// WithDecoder replaces the audio decoder.
func WithDecoder(d Decoder) Option {
	return func(c *config) { c.decode = d }
}

// WithEncoder replaces the audio encoder.
func WithEncoder(e Encoder) Option {
	return func(c *config) { c.encode = e }
}

// WithSpectrumRenderer replaces the spectrum plot renderer.
func WithSpectrumRenderer(r SpectrumRenderer) Option {
	return func(c *config) { c.renderSpectrum = r }
}

// WithSpectrogramRenderer replaces the spectrogram renderer.
func WithSpectrogramRenderer(r SpectrogramRenderer) Option {
	return func(c *config) { c.renderSpectrogram = r }
}

// WithCSVWriter replaces the CSV exporter.
func WithCSVWriter(w CSVWriter) Option {
	return func(c *config) { c.writeCSV = w }
}

// Pipeline runs file-level analysis and filtering with a fixed
// configuration.
type Pipeline struct {
	cfg config
}

// New builds a Pipeline. Band and order defaults match the vocal
// band-stop use case: 300 Hz to 5 kHz at order 8.
func New(opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.order < 1 {
		return nil, fmt.Errorf("pipeline: filter order must be >= 1: %d", cfg.order)
	}
	if cfg.lowHz <= 0 || cfg.highHz <= cfg.lowHz {
		return nil, fmt.Errorf("pipeline: band must satisfy 0 < low < high: [%g, %g]", cfg.lowHz, cfg.highHz)
	}
	if cfg.smooth < 0 {
		return nil, fmt.Errorf("pipeline: smoothing fraction must be >= 0: %d", cfg.smooth)
	}

	return &Pipeline{cfg: cfg}, nil
}

// encoder resolves the output writer, binding the dither setting to the
// default WAV encoder when no custom encoder was injected.
func (p *Pipeline) encoder() Encoder {
	if p.cfg.encode != nil {
		return p.cfg.encode
	}
	if p.cfg.dither {
		seed := p.cfg.ditherSeed
		return func(path string, samples []float64, sampleRate int) error {
			return audiofile.WriteWAV(path, samples, sampleRate, audiofile.WithDither(seed))
		}
	}
	return func(path string, samples []float64, sampleRate int) error {
		return audiofile.WriteWAV(path, samples, sampleRate)
	}
}
