package design

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the designers.
var (
	ErrOrder  = errors.New("design: filter order must be >= 1")
	ErrCutoff = errors.New("design: cutoffs must satisfy 0 < low < high < Nyquist")
)

// designRate is the fixed sample rate the bilinear transform runs against.
// Cutoffs are pre-warped onto the analog axis first, so the -3 dB points of
// the digital result land on the requested frequencies regardless of the
// signal's actual rate.
const designRate = 2.0

// warp maps a digital frequency in Hz onto the pre-warped analog axis.
func warp(freqHz float64, sampleRate int) float64 {
	return 2 * designRate * math.Tan(math.Pi*freqHz/float64(sampleRate))
}

func checkOrder(order int) error {
	if order < 1 {
		return fmt.Errorf("%w: got %d", ErrOrder, order)
	}
	return nil
}

func checkCutoff(cutoffHz float64, sampleRate int) error {
	if sampleRate <= 0 || cutoffHz <= 0 || cutoffHz >= float64(sampleRate)/2 {
		return fmt.Errorf("%w: cutoff %g Hz at sample rate %d Hz", ErrCutoff, cutoffHz, sampleRate)
	}
	return nil
}

func checkBand(lowHz, highHz float64, sampleRate int) error {
	if sampleRate <= 0 || lowHz <= 0 || lowHz >= highHz || highHz >= float64(sampleRate)/2 {
		return fmt.Errorf("%w: band [%g, %g] Hz at sample rate %d Hz", ErrCutoff, lowHz, highHz, sampleRate)
	}
	return nil
}

// Lowpass designs a Butterworth lowpass of the given order with its -3 dB
// point at cutoffHz. It returns transfer-function vectors of length order+1
// with a[0] = 1.
func Lowpass(order int, cutoffHz float64, sampleRate int) (b, a []float64, err error) {
	if err := checkOrder(order); err != nil {
		return nil, nil, err
	}
	if err := checkCutoff(cutoffHz, sampleRate); err != nil {
		return nil, nil, err
	}

	f := lowpassToLowpass(butterworthPrototype(order), warp(cutoffHz, sampleRate))
	b, a = bilinear(f, designRate).transferFunction()
	return b, a, nil
}

// Highpass designs a Butterworth highpass of the given order with its -3 dB
// point at cutoffHz.
func Highpass(order int, cutoffHz float64, sampleRate int) (b, a []float64, err error) {
	if err := checkOrder(order); err != nil {
		return nil, nil, err
	}
	if err := checkCutoff(cutoffHz, sampleRate); err != nil {
		return nil, nil, err
	}

	f := lowpassToHighpass(butterworthPrototype(order), warp(cutoffHz, sampleRate))
	b, a = bilinear(f, designRate).transferFunction()
	return b, a, nil
}

// Bandpass designs a Butterworth bandpass passing [lowHz, highHz]. Both
// edges sit at -3 dB. The returned vectors have length 2*order+1.
func Bandpass(order int, lowHz, highHz float64, sampleRate int) (b, a []float64, err error) {
	if err := checkOrder(order); err != nil {
		return nil, nil, err
	}
	if err := checkBand(lowHz, highHz, sampleRate); err != nil {
		return nil, nil, err
	}

	w1 := warp(lowHz, sampleRate)
	w2 := warp(highHz, sampleRate)
	f := lowpassToBandpass(butterworthPrototype(order), math.Sqrt(w1*w2), w2-w1)
	b, a = bilinear(f, designRate).transferFunction()
	return b, a, nil
}

// Bandstop designs a Butterworth band-stop attenuating [lowHz, highHz].
// Both edges sit at -3 dB; gain approaches unity towards DC and Nyquist.
// The returned vectors have length 2*order+1.
func Bandstop(order int, lowHz, highHz float64, sampleRate int) (b, a []float64, err error) {
	if err := checkOrder(order); err != nil {
		return nil, nil, err
	}
	if err := checkBand(lowHz, highHz, sampleRate); err != nil {
		return nil, nil, err
	}

	w1 := warp(lowHz, sampleRate)
	w2 := warp(highHz, sampleRate)
	f := lowpassToBandstop(butterworthPrototype(order), math.Sqrt(w1*w2), w2-w1)
	b, a = bilinear(f, designRate).transferFunction()
	return b, a, nil
}
