package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/biquad"
)

func cascadeDB(sections []biquad.Coefficients, freq, sampleRate float64) float64 {
	db := 0.0
	for i := range sections {
		db += sections[i].MagnitudeDB(freq, sampleRate)
	}

	return db
}

func TestButterworthSectionCount(t *testing.T) {
	for order := 1; order <= 8; order++ {
		want := (order + 1) / 2
		if got := len(ButterworthHP(1000, order, 48000)); got != want {
			t.Errorf("ButterworthHP order %d: %d sections, want %d", order, got, want)
		}
		if got := len(ButterworthLP(1000, order, 48000)); got != want {
			t.Errorf("ButterworthLP order %d: %d sections, want %d", order, got, want)
		}
	}
}

func TestButterworthCutoffGain(t *testing.T) {
	const (
		sampleRate = 48000.0
		cutoff     = 1000.0
	)

	want := 20 * math.Log10(1/math.Sqrt2)

	for order := 1; order <= 8; order++ {
		hp := ButterworthHP(cutoff, order, sampleRate)
		if got := cascadeDB(hp, cutoff, sampleRate); !almostEqual(got, want, 1e-6) {
			t.Errorf("HP order %d at cutoff: %v dB, want %v", order, got, want)
		}

		lp := ButterworthLP(cutoff, order, sampleRate)
		if got := cascadeDB(lp, cutoff, sampleRate); !almostEqual(got, want, 1e-6) {
			t.Errorf("LP order %d at cutoff: %v dB, want %v", order, got, want)
		}
	}
}

// TestButterworthRolloffSteepness verifies the asymptotic 6 dB/octave/order
// slope well inside the stopband. The slope is measured between fc/16 and
// fc/8 for the highpass (and mirrored for the lowpass), far enough from the
// cutoff for the asymptote to hold.
func TestButterworthRolloffSteepness(t *testing.T) {
	const (
		sampleRate = 48000.0
		cutoff     = 1000.0
	)

	// Each unit of the EQ's slope setting adds one 2nd-order section, i.e.
	// 12 dB/octave.
	for k := 1; k <= 4; k++ {
		order := 2 * k
		wantPerOctave := 6.0 * float64(order)

		hp := ButterworthHP(cutoff, order, sampleRate)
		lo := cascadeDB(hp, cutoff/16, sampleRate)
		hi := cascadeDB(hp, cutoff/8, sampleRate)
		if got := hi - lo; !almostEqual(got, wantPerOctave, 0.5) {
			t.Errorf("HP slope %d: %v dB/octave, want %v", k, got, wantPerOctave)
		}

		lp := ButterworthLP(cutoff, order, sampleRate)
		lo = cascadeDB(lp, cutoff*8, sampleRate)
		hi = cascadeDB(lp, cutoff*4, sampleRate)
		if got := hi - lo; got < wantPerOctave-3 {
			// Bilinear warping steepens the lowpass slope toward Nyquist,
			// so only a lower bound is asserted on this side.
			t.Errorf("LP slope %d: %v dB/octave, want >= %v", k, got, wantPerOctave-3)
		}
	}
}

func TestButterworthPassbandFlat(t *testing.T) {
	const sampleRate = 48000.0

	hp := ButterworthHP(100, 8, sampleRate)
	for _, f := range []float64{1000, 5000, 10000} {
		if got := cascadeDB(hp, f, sampleRate); math.Abs(got) > 0.05 {
			t.Errorf("HP passband at %v Hz: %v dB", f, got)
		}
	}
}

func TestButterworthInvalidOrder(t *testing.T) {
	if got := ButterworthHP(1000, 0, 48000); got != nil {
		t.Errorf("order 0: got %v sections, want nil", len(got))
	}
	if got := ButterworthLP(1000, -1, 48000); got != nil {
		t.Errorf("negative order: got %v sections, want nil", len(got))
	}
}
