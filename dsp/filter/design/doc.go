// Package design provides Butterworth IIR filter designers in
// transfer-function form.
//
// The functions in this package produce (b, a) coefficient vectors
// consumable by dsp/filter/iir for runtime processing. Designs follow the
// classic chain: analog lowpass prototype, band transformation in
// zero/pole/gain form, bilinear transform with frequency pre-warping, and
// polynomial expansion. Cutoffs are given in Hz against the signal's sample
// rate; the -3 dB points of the result land exactly on the requested
// frequencies.
package design
