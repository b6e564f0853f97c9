package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestResponsePassthrough(t *testing.T) {
	c := Passthrough()
	for _, f := range []float64{20, 100, 1000, 10000, 20000} {
		h := c.Response(f, 48000)
		if !almostEqual(cmplx.Abs(h), 1, 1e-12) {
			t.Errorf("f=%v: |H| = %v, want 1", f, cmplx.Abs(h))
		}
		if db := c.MagnitudeDB(f, 48000); !almostEqual(db, 0, 1e-10) {
			t.Errorf("f=%v: MagnitudeDB = %v, want 0", f, db)
		}
	}
}

func TestMagnitudeSquaredMatchesComplexResponse(t *testing.T) {
	c := Coefficients{B0: 0.2928, B1: 0.5857, B2: 0.2928, A1: -0.0, A2: 0.1716}
	for _, f := range []float64{50, 440, 1000, 5000, 15000} {
		h := c.Response(f, 44100)
		want := cmplx.Abs(h) * cmplx.Abs(h)
		got := c.MagnitudeSquared(f, 44100)
		if !almostEqual(got, want, 1e-10) {
			t.Errorf("f=%v: closed form %v, complex %v", f, got, want)
		}
	}
}

func TestMagnitudeDBConsistency(t *testing.T) {
	c := Coefficients{B0: 0.5, B1: 0.2, B2: 0.1, A1: -0.3, A2: 0.05}
	for _, f := range []float64{100, 1000, 10000} {
		want := 20 * math.Log10(c.Magnitude(f, 48000))
		got := c.MagnitudeDB(f, 48000)
		if !almostEqual(got, want, 1e-10) {
			t.Errorf("f=%v: MagnitudeDB %v, 20log10|H| %v", f, got, want)
		}
	}
}
