// Package iir provides arbitrary-order IIR filter runtime primitives in
// transfer-function form.
//
// A [Filter] holds a numerator/denominator coefficient pair (b, a) and
// implements Direct Form II Transposed processing, the standard causal
// difference equation with b as feed-forward and a as feed-back weights.
// One-shot zero-state application is available via [Apply] and
// [Filter.Apply]; streaming use goes through [Filter.ProcessSample] and
// [Filter.ProcessBlock].
//
// This package provides the processing runtime only. Coefficient design
// (Butterworth band filters) lives in dsp/filter/design.
package iir
