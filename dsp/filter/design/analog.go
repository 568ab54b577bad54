package design

import (
	"math"
	"math/cmplx"
)

// zpk is a filter in zero/pole/gain form, the working representation for
// the analog prototype transformations.
type zpk struct {
	z, p []complex128
	k    float64
}

// relativeDegree returns the pole surplus over zeros.
func (f zpk) relativeDegree() int {
	return len(f.p) - len(f.z)
}

// butterworthPrototype returns the analog lowpass prototype of the given
// order: no finite zeros, poles spread over the left half of the unit
// circle, unity gain.
func butterworthPrototype(order int) zpk {
	p := make([]complex128, order)
	for i := range p {
		theta := math.Pi * float64(2*i+1-order) / float64(2*order)
		p[i] = -cmplx.Exp(complex(0, theta))
	}
	return zpk{p: p, k: 1}
}

func scaleRoots(roots []complex128, s float64) []complex128 {
	out := make([]complex128, len(roots))
	for i, r := range roots {
		out[i] = r * complex(s, 0)
	}
	return out
}

// invertRoots maps each root r to s/r, turning a lowpass root layout into
// a highpass one.
func invertRoots(roots []complex128, s float64) []complex128 {
	out := make([]complex128, len(roots))
	for i, r := range roots {
		out[i] = complex(s, 0) / r
	}
	return out
}

// splitBand maps each baseband root r to the pair r ± sqrt(r² - w0²),
// duplicating the root around the band center and doubling the order.
func splitBand(roots []complex128, w0 float64) []complex128 {
	out := make([]complex128, 0, 2*len(roots))
	w2 := complex(w0*w0, 0)
	for _, r := range roots {
		d := cmplx.Sqrt(r*r - w2)
		out = append(out, r+d, r-d)
	}
	return out
}

// prodNegated returns the product of (-r) over all roots, 1 for none.
func prodNegated(roots []complex128) complex128 {
	acc := complex(1, 0)
	for _, r := range roots {
		acc *= -r
	}
	return acc
}

// lowpassToLowpass rescales the prototype cutoff from 1 rad/s to w0.
func lowpassToLowpass(f zpk, w0 float64) zpk {
	return zpk{
		z: scaleRoots(f.z, w0),
		p: scaleRoots(f.p, w0),
		k: f.k * math.Pow(w0, float64(f.relativeDegree())),
	}
}

// lowpassToHighpass inverts the prototype about w0. Zeros at infinity move
// to the origin.
func lowpassToHighpass(f zpk, w0 float64) zpk {
	degree := f.relativeDegree()

	z := invertRoots(f.z, w0)
	p := invertRoots(f.p, w0)
	for i := 0; i < degree; i++ {
		z = append(z, 0)
	}

	return zpk{
		z: z,
		p: p,
		k: f.k * real(prodNegated(f.z)/prodNegated(f.p)),
	}
}

// lowpassToBandpass scales the prototype to the bandwidth and splits every
// root around the band center w0. Zeros at infinity land at the origin.
func lowpassToBandpass(f zpk, w0, bw float64) zpk {
	degree := f.relativeDegree()

	z := splitBand(scaleRoots(f.z, bw/2), w0)
	p := splitBand(scaleRoots(f.p, bw/2), w0)
	for i := 0; i < degree; i++ {
		z = append(z, 0)
	}

	return zpk{
		z: z,
		p: p,
		k: f.k * math.Pow(bw, float64(degree)),
	}
}

// lowpassToBandstop inverts the prototype about the bandwidth and splits
// every root around the band center w0. Zeros at infinity become
// transmission zeros at ±j*w0, pinning the response to zero inside the
// stop band.
func lowpassToBandstop(f zpk, w0, bw float64) zpk {
	degree := f.relativeDegree()

	z := splitBand(invertRoots(f.z, bw/2), w0)
	p := splitBand(invertRoots(f.p, bw/2), w0)
	for i := 0; i < degree; i++ {
		z = append(z, complex(0, w0), complex(0, -w0))
	}

	return zpk{
		z: z,
		p: p,
		k: f.k * real(prodNegated(f.z)/prodNegated(f.p)),
	}
}

// bilinear maps an analog design onto the digital plane at sample rate fs.
// Zeros at infinity land at z = -1 (Nyquist).
func bilinear(f zpk, fs float64) zpk {
	degree := f.relativeDegree()
	fs2 := complex(2*fs, 0)

	z := make([]complex128, 0, len(f.p))
	for _, zi := range f.z {
		z = append(z, (fs2+zi)/(fs2-zi))
	}
	p := make([]complex128, len(f.p))
	for i, pi := range f.p {
		p[i] = (fs2 + pi) / (fs2 - pi)
	}
	for i := 0; i < degree; i++ {
		z = append(z, -1)
	}

	num := complex(1, 0)
	for _, zi := range f.z {
		num *= fs2 - zi
	}
	den := complex(1, 0)
	for _, pi := range f.p {
		den *= fs2 - pi
	}

	return zpk{
		z: z,
		p: p,
		k: f.k * real(num/den),
	}
}
