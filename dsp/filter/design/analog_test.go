package design

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestButterworthPrototype(t *testing.T) {
	for _, order := range []int{1, 2, 3, 5, 8} {
		f := butterworthPrototype(order)
		if len(f.z) != 0 {
			t.Errorf("order %d: got %d zeros, want none", order, len(f.z))
		}
		if len(f.p) != order {
			t.Errorf("order %d: got %d poles, want %d", order, len(f.p), order)
		}
		if f.k != 1 {
			t.Errorf("order %d: gain %g, want 1", order, f.k)
		}
		for _, p := range f.p {
			if math.Abs(cmplx.Abs(p)-1) > 1e-12 {
				t.Errorf("order %d: pole %v off the unit circle", order, p)
			}
			if real(p) >= 0 {
				t.Errorf("order %d: pole %v not strictly in the left half plane", order, p)
			}
		}
		// The monic denominator of a Butterworth prototype has a constant
		// term of exactly one.
		prod := prodNegated(f.p)
		if math.Abs(real(prod)-1) > 1e-12 || math.Abs(imag(prod)) > 1e-12 {
			t.Errorf("order %d: product of negated poles %v, want 1", order, prod)
		}
	}
}

func TestPolynomialFromRoots(t *testing.T) {
	// (x+1)(x+2) = x^2 + 3x + 2
	got := polynomialFromRoots([]complex128{-1, -2})
	want := []complex128{1, 3, 2}
	if len(got) != len(want) {
		t.Fatalf("got %d coefficients, want %d", len(got), len(want))
	}
	for i := range want {
		if cmplx.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("coefficient %d: got %v, want %v", i, got[i], want[i])
		}
	}

	// An empty root set is the constant polynomial 1.
	if got := polynomialFromRoots(nil); len(got) != 1 || got[0] != 1 {
		t.Errorf("empty roots: got %v, want [1]", got)
	}
}

func TestPolynomialFromConjugateRootsIsReal(t *testing.T) {
	roots := []complex128{complex(-0.3, 0.9), complex(-0.3, -0.9), -1}
	for i, c := range polynomialFromRoots(roots) {
		if math.Abs(imag(c)) > 1e-12 {
			t.Errorf("coefficient %d has imaginary part %g", i, imag(c))
		}
	}
}

func TestLowpassToLowpassScalesPoles(t *testing.T) {
	const w0 = 3.5
	proto := butterworthPrototype(3)
	f := lowpassToLowpass(proto, w0)
	if len(f.p) != 3 || len(f.z) != 0 {
		t.Fatalf("unexpected shape: %d poles, %d zeros", len(f.p), len(f.z))
	}
	for i, p := range f.p {
		want := proto.p[i] * complex(w0, 0)
		if cmplx.Abs(p-want) > 1e-12 {
			t.Errorf("pole %d: got %v, want %v", i, p, want)
		}
	}
	// DC gain of a lowpass stays at one regardless of the cutoff.
	dc := f.k * real(prodNegated(f.p))
	if math.Abs(dc-1) > 1e-9 {
		t.Errorf("DC gain %g, want 1", dc)
	}
}

func TestLowpassToBandstopShape(t *testing.T) {
	const (
		w0 = 0.4
		bw = 1.2
	)
	f := lowpassToBandstop(butterworthPrototype(2), w0, bw)
	if len(f.p) != 4 {
		t.Fatalf("got %d poles, want 4", len(f.p))
	}
	if len(f.z) != 4 {
		t.Fatalf("got %d zeros, want 4", len(f.z))
	}
	// Transmission zeros sit on the imaginary axis at +-j*w0.
	for _, z := range f.z {
		if math.Abs(real(z)) > 1e-12 || math.Abs(cmplx.Abs(z)-w0) > 1e-12 {
			t.Errorf("zero %v, want +-%gj", z, w0)
		}
	}
	// Poles remain stable after the transform.
	for _, p := range f.p {
		if real(p) >= 0 {
			t.Errorf("pole %v not strictly in the left half plane", p)
		}
	}
}

func TestBilinearMapsStablePolesInsideUnitCircle(t *testing.T) {
	w1 := warp(300, 44100)
	w2 := warp(5000, 44100)
	f := lowpassToBandstop(butterworthPrototype(8), math.Sqrt(w1*w2), w2-w1)
	d := bilinear(f, designRate)
	if len(d.p) != 16 || len(d.z) != 16 {
		t.Fatalf("unexpected shape: %d poles, %d zeros", len(d.p), len(d.z))
	}
	for _, p := range d.p {
		if cmplx.Abs(p) >= 1 {
			t.Errorf("digital pole %v on or outside the unit circle", p)
		}
	}
	for _, z := range d.z {
		if math.Abs(cmplx.Abs(z)-1) > 1e-9 {
			t.Errorf("digital zero %v off the unit circle", z)
		}
	}
}
