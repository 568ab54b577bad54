package signal

import (
	"errors"
	"math"
	"testing"
)

func TestSineLength(t *testing.T) {
	s, err := Sine(1000, 1, 48000, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestSineAmplitude(t *testing.T) {
	// A quarter period of a 1 Hz sine at 4 Hz sample rate hits the peak.
	s, err := Sine(1, 0.75, 4, 4)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if math.Abs(s[1]-0.75) > 1e-12 {
		t.Fatalf("s[1] = %v, want 0.75", s[1])
	}
}

func TestSineInvalid(t *testing.T) {
	if _, err := Sine(1000, 1, 48000, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
	if _, err := Sine(1000, 1, 0, 64); !errors.Is(err, ErrSampleRate) {
		t.Fatalf("err = %v, want ErrSampleRate", err)
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	a, err := WhiteNoise(42, 1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	b, err := WhiteNoise(42, 1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestWhiteNoiseRange(t *testing.T) {
	n, err := WhiteNoise(7, 0.25, 256)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	for i, v := range n {
		if v < -0.25 || v > 0.25 {
			t.Fatalf("n[%d] = %v outside [-0.25, 0.25]", i, v)
		}
	}
}

func TestWhiteNoiseInvalid(t *testing.T) {
	if _, err := WhiteNoise(1, -0.5, 16); err == nil {
		t.Fatal("expected error for negative amplitude")
	}
	if _, err := WhiteNoise(1, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestPeakAbs(t *testing.T) {
	if p := PeakAbs([]float64{0.1, -0.9, 0.5}); p != 0.9 {
		t.Fatalf("PeakAbs = %v, want 0.9", p)
	}
	if p := PeakAbs(nil); p != 0 {
		t.Fatalf("PeakAbs(nil) = %v, want 0", p)
	}
}

func TestLimitPeakWithinRange(t *testing.T) {
	in := []float64{0.5, -0.9, 0.25}
	out, scaled, err := LimitPeak(in, 1.0)
	if err != nil {
		t.Fatalf("LimitPeak error: %v", err)
	}
	if scaled {
		t.Fatal("peak 0.9 <= 1.0 must not be rescaled")
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %v, want %v unchanged", i, out[i], in[i])
		}
	}
}

func TestLimitPeakAboveRange(t *testing.T) {
	in := []float64{0.5, -2.0, 1.0}
	out, scaled, err := LimitPeak(in, 1.0)
	if err != nil {
		t.Fatalf("LimitPeak error: %v", err)
	}
	if !scaled {
		t.Fatal("peak 2.0 > 1.0 must be rescaled")
	}
	if p := PeakAbs(out); math.Abs(p-1.0) > 1e-15 {
		t.Fatalf("peak after limiting = %v, want 1.0", p)
	}
	// Relative sample ratios preserved.
	if math.Abs(out[0]+out[1]/4) > 1e-15 {
		t.Fatalf("sample ratio changed: %v vs %v", out[0], out[1])
	}
	// Input untouched.
	if in[1] != -2.0 {
		t.Fatal("input slice was modified")
	}
}

func TestLimitPeakExactBoundary(t *testing.T) {
	in := []float64{1.0, -1.0}
	out, scaled, err := LimitPeak(in, 1.0)
	if err != nil {
		t.Fatalf("LimitPeak error: %v", err)
	}
	if scaled {
		t.Fatal("peak exactly 1.0 must not be rescaled")
	}
	if out[0] != 1.0 || out[1] != -1.0 {
		t.Fatalf("out = %v, want unchanged", out)
	}
}

func TestLimitPeakInvalid(t *testing.T) {
	if _, _, err := LimitPeak(nil, 1.0); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
	if _, _, err := LimitPeak([]float64{1}, 0); err == nil {
		t.Fatal("expected error for non-positive max peak")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{0.1, -0.2}, 1.0)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if math.Abs(PeakAbs(out)-1.0) > 1e-15 {
		t.Fatalf("peak = %v, want 1.0", PeakAbs(out))
	}
}

func TestNormalizeSilence(t *testing.T) {
	out, err := Normalize([]float64{0, 0, 0}, 1.0)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}
}
