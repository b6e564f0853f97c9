package eq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/design"
	"github.com/cwbudde/algo-eq/dsp/osc"
)

const sampleRate = 48000.0

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func flatSettings() Settings {
	s := DefaultSettings()
	s.LowCutBypassed = true
	s.HighCutBypassed = true

	return s
}

func TestDefaultChainIsNearlyFlat(t *testing.T) {
	c := NewChain(sampleRate)

	// Cuts parked at the band edges leave the audible range within a dB.
	for _, f := range []float64{100, 1000, 10000} {
		if db := c.MagnitudeDB(f); math.Abs(db) > 1 {
			t.Errorf("default chain at %v Hz: %v dB", f, db)
		}
	}
}

func TestBypassedBandsAreExactlyUnity(t *testing.T) {
	s := DefaultSettings()
	s.LowCutFreq = 1000
	s.HighCutFreq = 2000
	s.PeakFreq = 1500
	s.PeakGainDB = 18
	s.LowCutBypassed = true
	s.PeakBypassed = true
	s.HighCutBypassed = true

	c := NewChain(sampleRate)
	c.Update(s)

	for _, f := range []float64{20, 500, 1500, 5000, 20000} {
		if mag := c.Magnitude(f); mag != 1 {
			t.Errorf("all-bypassed chain at %v Hz: magnitude %v, want exactly 1", f, mag)
		}
	}
}

func TestPeakBoostEndToEnd(t *testing.T) {
	// Settings {peakFreq=1000, gain=+12 dB, Q=1, cuts bypassed} at 48 kHz:
	// +12 dB at 1 kHz, ~0 dB at the extremes.
	s := flatSettings()
	s.PeakFreq = 1000
	s.PeakGainDB = 12
	s.PeakQ = 1

	c := NewChain(sampleRate)
	c.Update(s)

	if db := c.MagnitudeDB(1000); !almostEqual(db, 12, 0.2) {
		t.Errorf("at 1000 Hz: %v dB, want 12 +/- 0.2", db)
	}
	if db := c.MagnitudeDB(20); math.Abs(db) > 0.5 {
		t.Errorf("at 20 Hz: %v dB, want ~0", db)
	}
	if db := c.MagnitudeDB(20000); math.Abs(db) > 0.5 {
		t.Errorf("at 20 kHz: %v dB, want ~0", db)
	}
}

func TestCutOrderControlsSlope(t *testing.T) {
	for order := 1; order <= 4; order++ {
		s := DefaultSettings()
		s.LowCutFreq = 1000
		s.LowCutOrder = order
		s.PeakBypassed = true
		s.HighCutBypassed = true

		c := NewChain(sampleRate)
		c.Update(s)

		// Slope measured one octave apart deep in the stopband.
		lo := c.MagnitudeDB(1000.0 / 16)
		hi := c.MagnitudeDB(1000.0 / 8)
		want := 12.0 * float64(order)
		if got := hi - lo; !almostEqual(got, want, 0.5) {
			t.Errorf("order %d: slope %v dB/octave, want %v", order, got, want)
		}
	}
}

func TestInactiveSectionsExcluded(t *testing.T) {
	s := DefaultSettings()
	s.LowCutFreq = 1000
	s.LowCutOrder = 1
	s.PeakBypassed = true
	s.HighCutBypassed = true

	c := NewChain(sampleRate)
	c.Update(s)

	if got := c.lowCut.ActiveSections(); got != 1 {
		t.Fatalf("order 1: %d active sections, want 1", got)
	}

	// The chain magnitude must equal a single designed section, proving the
	// three inactive bank slots contribute nothing.
	ref := design.ButterworthHP(1000, 2, sampleRate)
	if len(ref) != 1 {
		t.Fatalf("reference cascade: %d sections", len(ref))
	}
	for _, f := range []float64{100, 1000, 10000} {
		want := ref[0].Magnitude(f, sampleRate)
		if got := c.Magnitude(f); !almostEqual(got, want, 1e-12) {
			t.Errorf("at %v Hz: chain %v, single section %v", f, got, want)
		}
	}
}

func TestProcessBlockAttenuatesStopbandTone(t *testing.T) {
	s := DefaultSettings()
	s.LowCutFreq = 2000
	s.LowCutOrder = 4
	s.PeakBypassed = true
	s.HighCutBypassed = true

	c := NewChain(sampleRate)
	c.Update(s)

	src := osc.NewSine(100, sampleRate)

	buf := make([]float64, 4800)
	var peak float64
	for blocks := 0; blocks < 10; blocks++ {
		src.Fill(buf)
		c.ProcessBlock(buf)
		// Skip the first blocks while the filter settles.
		if blocks < 5 {
			continue
		}
		for _, v := range buf {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}

	// 100 Hz is more than 4 octaves under a 48 dB/oct cut.
	if peak > 1e-6 {
		t.Errorf("stopband tone peak %v, want near-total attenuation", peak)
	}
}

func TestProcessBlockPassesPassbandTone(t *testing.T) {
	s := DefaultSettings()
	s.LowCutFreq = 50
	s.LowCutOrder = 2
	s.PeakBypassed = true
	s.HighCutBypassed = true

	c := NewChain(sampleRate)
	c.Update(s)

	src := osc.NewSine(1000, sampleRate)

	buf := make([]float64, 4800)
	var peak float64
	for blocks := 0; blocks < 10; blocks++ {
		src.Fill(buf)
		c.ProcessBlock(buf)
		if blocks < 5 {
			continue
		}
		for _, v := range buf {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}

	if !almostEqual(peak, 1, 0.01) {
		t.Errorf("passband tone peak %v, want ~1", peak)
	}
}

func TestUpdatePreservesFilterState(t *testing.T) {
	s := flatSettings()
	s.PeakFreq = 1000
	s.PeakGainDB = 6

	c := NewChain(sampleRate)
	c.Update(s)

	src := osc.NewSine(440, sampleRate)
	buf := make([]float64, 480)
	src.Fill(buf)
	c.ProcessBlock(buf)

	before := c.peak.State()
	if before == [2]float64{0, 0} {
		t.Fatal("expected nonzero delay state after processing")
	}

	// A settings change rebuilds coefficients but must not reset state.
	s.PeakGainDB = 7
	c.Update(s)

	if c.peak.State() != before {
		t.Fatalf("Update reset peak state: got %v, want %v", c.peak.State(), before)
	}
}

func TestPrepareResetsState(t *testing.T) {
	c := NewChain(sampleRate)

	src := osc.NewSine(440, sampleRate)
	buf := make([]float64, 480)
	src.Fill(buf)

	s := flatSettings()
	s.PeakGainDB = 6
	c.Update(s)
	c.ProcessBlock(buf)

	c.Prepare(44100, s)

	if c.SampleRate() != 44100 {
		t.Fatalf("sample rate after Prepare: %v", c.SampleRate())
	}
	if st := c.peak.State(); st != [2]float64{0, 0} {
		t.Fatalf("Prepare kept stale filter state: %v", st)
	}
}
