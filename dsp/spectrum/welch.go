package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/spectral/dsp/window"
)

const defaultSegmentLength = 4096

// WelchOption configures Welch averaging.
type WelchOption func(*welchConfig)

type welchConfig struct {
	segmentLength int
	overlap       float64
	window        window.Type
}

// WithSegmentLength sets the FFT segment length. Lengths that are not a
// power of two are rounded down to one, and segments longer than the signal
// shrink to fit. The default is 4096.
func WithSegmentLength(n int) WelchOption {
	return func(c *welchConfig) { c.segmentLength = n }
}

// WithOverlap sets the fractional overlap between consecutive segments in
// [0, 1). The default is 0.5.
func WithOverlap(frac float64) WelchOption {
	return func(c *welchConfig) { c.overlap = frac }
}

// WithWindow selects the taper applied to each segment. The default is a
// Hann window.
func WithWindow(t window.Type) WelchOption {
	return func(c *welchConfig) { c.window = t }
}

// Welch estimates the amplitude spectrum by averaging windowed, overlapping
// power-of-two segments. Against [Analyzer.Compute] it trades frequency
// resolution for variance reduction on long or noisy signals. Bins follow
// the same convention: DC excluded, amplitudes corrected for the window's
// coherent gain.
func (a *Analyzer) Welch(samples []float64, opts ...WelchOption) (Spectrum, error) {
	n := len(samples)
	if n < 2 {
		return Spectrum{}, fmt.Errorf("%w: got %d", ErrTooShort, n)
	}

	cfg := welchConfig{
		segmentLength: defaultSegmentLength,
		overlap:       0.5,
		window:        window.TypeHann,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.segmentLength < 2 {
		return Spectrum{}, fmt.Errorf("spectrum: welch segment length must be >= 2: %d", cfg.segmentLength)
	}
	if cfg.overlap < 0 || cfg.overlap >= 1 {
		return Spectrum{}, fmt.Errorf("spectrum: welch overlap must be in [0, 1): %g", cfg.overlap)
	}

	seg := floorPow2(cfg.segmentLength)
	for seg > n {
		seg >>= 1
	}
	hop := seg - int(float64(seg)*cfg.overlap)
	if hop < 1 {
		hop = 1
	}

	coeffs, err := window.Generate(cfg.window, seg, window.WithPeriodic())
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: welch window: %w", err)
	}
	gain, err := window.CoherentGain(coeffs)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: welch window: %w", err)
	}

	plan, err := algofft.NewPlan64(seg)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: welch plan: %w", err)
	}

	in := make([]complex128, seg)
	out := make([]complex128, seg)
	acc := make([]float64, seg/2)
	segments := 0
	for start := 0; start+seg <= n; start += hop {
		for i := 0; i < seg; i++ {
			in[i] = complex(samples[start+i]*coeffs[i], 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return Spectrum{}, fmt.Errorf("spectrum: welch fft: %w", err)
		}
		vecmath.AddBlockInPlace(acc, Magnitude(out[1:seg/2+1]))
		segments++
	}

	vecmath.ScaleBlockInPlace(acc, 2/(float64(seg)*gain*float64(segments)))

	freqs := make([]float64, seg/2)
	step := float64(a.sampleRate) / float64(seg)
	for k := 1; k <= seg/2; k++ {
		freqs[k-1] = float64(k) * step
	}

	return Spectrum{
		Frequencies: freqs,
		Magnitudes:  acc,
		SampleRate:  a.sampleRate,
		FFTLength:   seg,
	}, nil
}

// Welch estimates the amplitude spectrum of samples at sampleRate by
// segment averaging. See [Analyzer.Welch].
func Welch(samples []float64, sampleRate int, opts ...WelchOption) (Spectrum, error) {
	a, err := NewAnalyzer(sampleRate)
	if err != nil {
		return Spectrum{}, err
	}
	return a.Welch(samples, opts...)
}

func floorPow2(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
