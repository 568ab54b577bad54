// Package spectrum computes single-sided amplitude spectra of real-valued
// signals and derives summary statistics from them.
//
// Compute runs an exact full-length transform at any signal length and
// returns calibrated bins: a pure sinusoid of amplitude A centered on a bin
// reads close to A. Welch trades that exactness for variance reduction on
// long or noisy signals by averaging windowed power-of-two segments. Both
// cover transform indices 1 through N/2, so the DC bin is excluded and the
// Nyquist bin is included for even lengths.
//
// Alongside the estimators, the package carries backend-independent kernels
// over complex bins (Magnitude, Power), fractional-octave smoothing, and a
// Goertzel probe for reading single frequencies without a transform.
package spectrum
