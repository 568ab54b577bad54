package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single spectrum bin by recurrence, without computing
// a full transform. It is the cheap way to probe how much of one frequency
// a signal carries, and it accepts streamed input of any length.
//
// The probe is stateful: Power, Magnitude and Amplitude evaluate the
// frequency component over all samples processed since the last Reset.
// Spectral leakage applies as with any DFT bin, so probes read most
// accurately at frequencies spanning a whole number of cycles over the
// processed block.
type Goertzel struct {
	coeff float64
	s0    float64
	s1    float64
	count int

	frequency  float64
	sampleRate float64
}

// NewGoertzel returns a probe tuned to freqHz for signals sampled at
// sampleRate Hz. The frequency must lie in [0, sampleRate/2].
func NewGoertzel(freqHz, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrBadSampleRate, sampleRate)
	}
	if freqHz < 0 || freqHz > sampleRate/2 || math.IsNaN(freqHz) {
		return nil, fmt.Errorf("spectrum: probe frequency %v Hz outside [0, %g]", freqHz, sampleRate/2)
	}

	return &Goertzel{
		coeff:      2 * math.Cos(2*math.Pi*freqHz/sampleRate),
		frequency:  freqHz,
		sampleRate: sampleRate,
	}, nil
}

// Frequency returns the probed frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// SampleRate returns the sample rate the probe was built for.
func (g *Goertzel) SampleRate() float64 { return g.sampleRate }

// ProcessSample advances the recurrence by one sample.
func (g *Goertzel) ProcessSample(x float64) {
	s := x + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
	g.count++
}

// ProcessBlock advances the recurrence over a whole block.
func (g *Goertzel) ProcessBlock(block []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range block {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.count += len(block)
}

// Power returns |X|^2 of the probed bin over the samples seen so far.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X| of the probed bin over the samples seen so far.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}
	return math.Sqrt(p)
}

// Amplitude returns the sinusoidal amplitude estimate of the probed
// frequency, scaled like a [Spectrum] bin: a pure tone of amplitude A at
// the probe frequency reads close to A.
func (g *Goertzel) Amplitude() float64 {
	if g.count == 0 {
		return 0
	}
	return 2 * g.Magnitude() / float64(g.count)
}

// Reset clears the recurrence state so the probe starts over on new input.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
	g.count = 0
}

// ToneAmplitude estimates the amplitude of the freqHz component of samples
// in one shot. See [Goertzel] for streamed use.
func ToneAmplitude(samples []float64, freqHz, sampleRate float64) (float64, error) {
	if len(samples) < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrTooShort, len(samples))
	}
	g, err := NewGoertzel(freqHz, sampleRate)
	if err != nil {
		return 0, err
	}
	g.ProcessBlock(samples)
	return g.Amplitude(), nil
}
