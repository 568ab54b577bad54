package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Errors returned by spectrum estimation.
var (
	ErrTooShort      = errors.New("spectrum: signal must have at least 2 samples")
	ErrBadSampleRate = errors.New("spectrum: sample rate must be positive")
)

// Spectrum is a single-sided amplitude spectrum. It covers transform
// indices 1 through N/2: the DC bin is excluded and the Nyquist bin is
// included when the transform length is even.
type Spectrum struct {
	// Frequencies holds the bin centers in Hz, strictly increasing.
	Frequencies []float64
	// Magnitudes holds the amplitude per bin, scaled by 2/N so that a pure
	// sinusoid of amplitude A centered on a bin reads close to A.
	Magnitudes []float64
	// SampleRate is the rate of the analyzed signal in Hz.
	SampleRate int
	// FFTLength is the transform length N the bins derive from.
	FFTLength int
}

// Len returns the number of bins.
func (s Spectrum) Len() int { return len(s.Magnitudes) }

// Resolution returns the bin spacing in Hz.
func (s Spectrum) Resolution() float64 {
	if s.FFTLength == 0 {
		return 0
	}
	return float64(s.SampleRate) / float64(s.FFTLength)
}

// NearestBin returns the index of the bin whose center lies closest to
// freqHz, or -1 for an empty spectrum.
func (s Spectrum) NearestBin(freqHz float64) int {
	if s.Len() == 0 {
		return -1
	}
	res := s.Resolution()
	if res <= 0 {
		return -1
	}
	// Bin i sits at (i+1)*res.
	i := int(math.Round(freqHz/res)) - 1
	if i < 0 {
		i = 0
	}
	if i >= s.Len() {
		i = s.Len() - 1
	}
	return i
}

// MagnitudeAt returns the magnitude of the bin nearest to freqHz, or 0 for
// an empty spectrum.
func (s Spectrum) MagnitudeAt(freqHz float64) float64 {
	i := s.NearestBin(freqHz)
	if i < 0 {
		return 0
	}
	return s.Magnitudes[i]
}

// Peak returns the index, center frequency and magnitude of the largest
// bin. For an empty spectrum it returns -1, 0, 0.
func (s Spectrum) Peak() (bin int, freqHz, magnitude float64) {
	if s.Len() == 0 {
		return -1, 0, 0
	}
	bin = 0
	for i, m := range s.Magnitudes {
		if m > s.Magnitudes[bin] {
			bin = i
		}
	}
	return bin, s.Frequencies[bin], s.Magnitudes[bin]
}

// Smoothed returns a copy of the spectrum with 1/fraction-octave smoothing
// applied to the magnitudes.
func (s Spectrum) Smoothed(fraction int) (Spectrum, error) {
	values, err := SmoothFractionalOctave(s.Frequencies, s.Magnitudes, fraction)
	if err != nil {
		return Spectrum{}, err
	}
	out := s
	out.Magnitudes = values
	return out, nil
}

// Analyzer computes spectra of signals sharing one sample rate. The
// transform plan is cached between calls, so analyzing many blocks of equal
// length reuses it. An Analyzer is not safe for concurrent use.
type Analyzer struct {
	sampleRate int
	fft        *fourier.FFT
	coeffs     []complex128
}

// NewAnalyzer returns an Analyzer for signals sampled at sampleRate Hz.
func NewAnalyzer(sampleRate int) (*Analyzer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadSampleRate, sampleRate)
	}
	return &Analyzer{sampleRate: sampleRate}, nil
}

// SampleRate returns the rate the Analyzer was built for.
func (a *Analyzer) SampleRate() int { return a.sampleRate }

// Compute returns the single-sided amplitude spectrum of samples using a
// full-length transform. Any signal length of at least 2 is accepted; the
// transform is exact, not zero-padded.
func (a *Analyzer) Compute(samples []float64) (Spectrum, error) {
	n := len(samples)
	if n < 2 {
		return Spectrum{}, fmt.Errorf("%w: got %d", ErrTooShort, n)
	}

	if a.fft == nil || a.fft.Len() != n {
		a.fft = fourier.NewFFT(n)
		a.coeffs = make([]complex128, n/2+1)
	}
	coeffs := a.fft.Coefficients(a.coeffs, samples)

	half := n / 2
	mags := Magnitude(coeffs[1 : half+1])
	vecmath.ScaleBlockInPlace(mags, 2/float64(n))

	freqs := make([]float64, half)
	step := float64(a.sampleRate) / float64(n)
	for k := 1; k <= half; k++ {
		freqs[k-1] = float64(k) * step
	}

	return Spectrum{
		Frequencies: freqs,
		Magnitudes:  mags,
		SampleRate:  a.sampleRate,
		FFTLength:   n,
	}, nil
}

// Compute returns the single-sided amplitude spectrum of samples at
// sampleRate. For repeated analysis at one rate, build an [Analyzer] once
// instead.
func Compute(samples []float64, sampleRate int) (Spectrum, error) {
	a, err := NewAnalyzer(sampleRate)
	if err != nil {
		return Spectrum{}, err
	}
	return a.Compute(samples)
}
