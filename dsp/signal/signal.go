// Package signal provides time-domain signal generation and level utilities.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by signal functions.
var (
	ErrEmpty      = errors.New("signal: input must not be empty")
	ErrSampleRate = errors.New("signal: sample rate must be positive")
)

// Sine generates a sine wave of the given frequency and amplitude.
func Sine(freqHz, amplitude, sampleRate float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sample count must be > 0: %d", samples)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrSampleRate, sampleRate)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates seeded uniform white noise in [-amplitude, amplitude].
func WhiteNoise(seed int64, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sample count must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: amplitude must be >= 0: %g", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// PeakAbs returns the largest absolute sample value, 0 for an empty slice.
func PeakAbs(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return vecmath.MaxAbs(data)
}

// LimitPeak rescales data so its peak equals maxPeak, but only when the
// current peak exceeds maxPeak. Signals already within range are returned
// unchanged (the result aliases data). The boolean reports whether scaling
// was applied.
func LimitPeak(data []float64, maxPeak float64) ([]float64, bool, error) {
	if len(data) == 0 {
		return nil, false, ErrEmpty
	}
	if maxPeak <= 0 {
		return nil, false, fmt.Errorf("signal: max peak must be > 0: %g", maxPeak)
	}

	peak := PeakAbs(data)
	if peak <= maxPeak {
		return data, false, nil
	}

	out := make([]float64, len(data))
	vecmath.ScaleBlock(out, data, maxPeak/peak)
	return out, true, nil
}

// Normalize scales data to the target peak amplitude and returns a new slice.
// Unlike LimitPeak it always rescales, including upward.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: target peak must be >= 0: %g", targetPeak)
	}

	out := make([]float64, len(data))
	peak := PeakAbs(data)
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/peak)
	return out, nil
}
