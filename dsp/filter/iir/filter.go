package iir

import (
	"errors"
	"fmt"
)

// Errors returned by filter construction.
var (
	ErrEmptyCoefficients = errors.New("iir: coefficient vectors must not be empty")
	ErrLeadingZero       = errors.New("iir: denominator leading coefficient must be nonzero")
)

// Filter is a causal IIR filter defined by transfer-function coefficients
//
//	H(z) = (b[0] + b[1]*z^-1 + ... + b[n]*z^-n) /
//	       (a[0] + a[1]*z^-1 + ... + a[n]*z^-n)
//
// normalized so that a[0] = 1. Processing uses Direct Form II Transposed
// with a single delay line of length n:
//
//	y    = b[0]*x + d[0]
//	d[j] = b[j+1]*x - a[j+1]*y + d[j+1]
//	d[n-1] = b[n]*x - a[n]*y
type Filter struct {
	b, a []float64
	d    []float64
}

// New returns a Filter for the coefficient pair (b, a) with zero state.
// The shorter vector is zero-padded so both share one length; all
// coefficients are divided by a[0].
func New(b, a []float64) (*Filter, error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, ErrEmptyCoefficients
	}
	if a[0] == 0 {
		return nil, ErrLeadingZero
	}

	n := len(b)
	if len(a) > n {
		n = len(a)
	}

	f := &Filter{
		b: make([]float64, n),
		a: make([]float64, n),
		d: make([]float64, n-1),
	}

	inv := 1 / a[0]
	for i, v := range b {
		f.b[i] = v * inv
	}
	for i, v := range a {
		f.a[i] = v * inv
	}
	return f, nil
}

// Order returns the filter order, max(len(b), len(a)) - 1.
func (f *Filter) Order() int {
	return len(f.b) - 1
}

// Numerator returns a copy of the normalized feed-forward coefficients.
func (f *Filter) Numerator() []float64 {
	return append([]float64(nil), f.b...)
}

// Denominator returns a copy of the normalized feed-back coefficients.
// The leading entry is always 1.
func (f *Filter) Denominator() []float64 {
	return append([]float64(nil), f.a...)
}

// ProcessSample filters one input sample and returns the output.
func (f *Filter) ProcessSample(x float64) float64 {
	if len(f.d) == 0 {
		return f.b[0] * x
	}

	y := f.b[0]*x + f.d[0]
	last := len(f.d) - 1
	for j := 0; j < last; j++ {
		f.d[j] = f.b[j+1]*x - f.a[j+1]*y + f.d[j+1]
	}
	f.d[last] = f.b[last+1]*x - f.a[last+1]*y
	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("iir: dst and src must have same length: %d vs %d", len(dst), len(src))
	}
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
	return nil
}

// Apply filters x from zero initial state and returns a new slice of the
// same length. The filter's streaming state is saved and restored, so an
// in-flight ProcessSample sequence is not disturbed.
func (f *Filter) Apply(x []float64) []float64 {
	saved := f.State()
	f.Reset()

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = f.ProcessSample(v)
	}

	f.SetState(saved)
	return out
}

// Reset clears the delay line to zero.
func (f *Filter) Reset() {
	for i := range f.d {
		f.d[i] = 0
	}
}

// State returns a copy of the current delay-line state.
func (f *Filter) State() []float64 {
	return append([]float64(nil), f.d...)
}

// SetState restores a previously saved delay-line state. Short input leaves
// the remaining entries zero; excess entries are ignored.
func (f *Filter) SetState(state []float64) {
	for i := range f.d {
		f.d[i] = 0
	}
	copy(f.d, state)
}

// Apply filters x through the transfer function (b, a) with zero initial
// state, returning a new output of the same length.
func Apply(b, a, x []float64) ([]float64, error) {
	f, err := New(b, a)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = f.ProcessSample(v)
	}
	return out, nil
}
