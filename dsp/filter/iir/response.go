package iir

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	e := cmplx.Exp(complex(0, -w))
	return evalPoly(f.b, e) / evalPoly(f.a, e)
}

// evalPoly evaluates sum(c[i] * x^i) by Horner's rule.
func evalPoly(c []float64, x complex128) complex128 {
	acc := complex(0, 0)
	for i := len(c) - 1; i >= 0; i-- {
		acc = acc*x + complex(c[i], 0)
	}
	return acc
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// Phase returns the phase response in radians at the given frequency,
// in [-pi, pi].
func (f *Filter) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(f.Response(freqHz, sampleRate))
}

// ImpulseResponse computes n samples of the impulse response h[n] by feeding
// an impulse through the filter. The streaming state is saved and restored,
// so this method does not modify the filter.
func (f *Filter) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := f.State()
	f.Reset()

	ir := make([]float64, n)
	ir[0] = f.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = f.ProcessSample(0)
	}

	f.SetState(saved)
	return ir
}
