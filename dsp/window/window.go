// Package window provides analysis windows for segmented spectrum estimation.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// String returns the conventional window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	}
	return fmt.Sprintf("window(%d)", int(t))
}

// ParseType maps a window name to its Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "rectangular", "rect":
		return TypeRectangular, nil
	case "hann":
		return TypeHann, nil
	case "hamming":
		return TypeHamming, nil
	case "blackman":
		return TypeBlackman, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Errors returned by window functions.
var (
	ErrLength      = errors.New("window: length must be > 0")
	ErrUnknownType = errors.New("window: unknown window type")
	ErrEmptyCoeffs = errors.New("window: coefficients must not be empty")
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form (FFT framing) instead of the
// symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrLength, length)
	}

	if length == 1 {
		return []float64{1}, nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	// The symmetric form spans [0, length-1]; the periodic form is the
	// symmetric window of length+1 with the last sample dropped.
	denom := float64(length - 1)
	if cfg.periodic {
		denom = float64(length)
	}

	out := make([]float64, length)
	for i := range out {
		x := float64(i) / denom
		out[i] = eval(t, x)
	}
	return out, nil
}

func eval(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(2*math.Pi*x)
	case TypeBlackman:
		return 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
	default:
		return 1
	}
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) error {
	if len(buf) == 0 {
		return fmt.Errorf("%w: %d", ErrLength, len(buf))
	}

	coeffs, err := Generate(t, len(buf), opts...)
	if err != nil {
		return err
	}

	vecmath.MulBlockInPlace(buf, coeffs)
	return nil
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(coeffs) == 0 {
		return nil, ErrEmptyCoeffs
	}
	if len(samples) != len(coeffs) {
		return nil, fmt.Errorf("window: samples and coefficients must have same length: %d vs %d", len(samples), len(coeffs))
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)
	return out, nil
}

// CoherentGain returns the mean of the coefficients. Dividing a windowed
// spectrum by the coherent gain restores sinusoid amplitudes.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, ErrEmptyCoeffs
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	return sum / float64(len(coeffs)), nil
}
