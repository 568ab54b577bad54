package design

// polynomialFromRoots expands prod(x - rᵢ) by successive convolution with
// (x - r). Coefficients come back in descending powers with a leading 1,
// which maps index i directly onto the z^-i tap of the difference equation.
func polynomialFromRoots(roots []complex128) []complex128 {
	coeffs := make([]complex128, 1, len(roots)+1)
	coeffs[0] = 1

	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}
	return coeffs
}

// transferFunction expands the filter into polynomial (b, a) vectors.
// Roots arrive in conjugate pairs, so the imaginary parts cancel and only
// the real parts are kept. a[0] is 1 by construction.
func (f zpk) transferFunction() (b, a []float64) {
	zc := polynomialFromRoots(f.z)
	b = make([]float64, len(zc))
	for i, c := range zc {
		b[i] = f.k * real(c)
	}

	pc := polynomialFromRoots(f.p)
	a = make([]float64, len(pc))
	for i, c := range pc {
		a[i] = real(c)
	}
	return b, a
}
