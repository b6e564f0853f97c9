package eq

import (
	"github.com/cwbudde/algo-eq/dsp/biquad"
	"github.com/cwbudde/algo-eq/dsp/design"
)

// MaxCutSections is the largest number of cascaded 2nd-order sections a cut
// band can activate (48 dB/octave).
const MaxCutSections = 4

// CutBank is a fixed bank of cascaded biquad sections for one cut band.
// Only the first `active` sections process audio; the rest are neutral and
// excluded from magnitude computation.
type CutBank struct {
	sections [MaxCutSections]biquad.Section
	active   int
	bypassed bool
}

// Update replaces the active coefficient sets. Delay-line state of the
// sections is preserved; only the coefficients change.
func (b *CutBank) Update(coeffs []biquad.Coefficients, bypassed bool) {
	n := len(coeffs)
	if n > MaxCutSections {
		n = MaxCutSections
	}

	for i := 0; i < n; i++ {
		b.sections[i].SetCoefficients(coeffs[i])
	}

	b.active = n
	b.bypassed = bypassed
}

// ProcessBlock runs buf through the active sections in place.
func (b *CutBank) ProcessBlock(buf []float64) {
	if b.bypassed {
		return
	}
	for i := 0; i < b.active; i++ {
		b.sections[i].ProcessBlock(buf)
	}
}

// Magnitude returns the bank's linear magnitude response at freq.
// A bypassed bank contributes exactly unity.
func (b *CutBank) Magnitude(freq, sampleRate float64) float64 {
	if b.bypassed {
		return 1
	}

	mag := 1.0
	for i := 0; i < b.active; i++ {
		mag *= b.sections[i].Magnitude(freq, sampleRate)
	}

	return mag
}

// Bypassed reports whether the whole bank is bypassed.
func (b *CutBank) Bypassed() bool { return b.bypassed }

// ActiveSections returns the number of sections currently processing.
func (b *CutBank) ActiveSections() int { return b.active }

// Reset clears the delay lines of all sections.
func (b *CutBank) Reset() {
	for i := range b.sections {
		b.sections[i].Reset()
	}
}

// Chain is the full per-channel filter cascade:
// low-cut bank, peaking section, high-cut bank, applied in that order.
type Chain struct {
	lowCut  CutBank
	peak    biquad.Section
	highCut CutBank

	peakBypassed bool
	sampleRate   float64
}

// NewChain returns a Chain prepared for the given sample rate with flat
// default settings.
func NewChain(sampleRate float64) *Chain {
	c := &Chain{sampleRate: sampleRate}
	c.Update(DefaultSettings())

	return c
}

// Prepare rebinds the chain to a new sample rate and recomputes coefficients
// from the given settings. Filter state is cleared: a sample-rate change
// invalidates any in-flight samples.
func (c *Chain) Prepare(sampleRate float64, s Settings) {
	c.sampleRate = sampleRate
	c.Reset()
	c.Update(s)
}

// Update rebuilds all coefficients from a settings snapshot. Called once per
// processed block; delay-line state is preserved throughout.
func (c *Chain) Update(s Settings) {
	low := design.ButterworthHP(s.LowCutFreq, 2*s.LowCutOrder, c.sampleRate)
	c.lowCut.Update(low, s.LowCutBypassed)

	c.peak.SetCoefficients(design.Peak(s.PeakFreq, s.PeakGainDB, s.PeakQ, c.sampleRate))
	c.peakBypassed = s.PeakBypassed

	high := design.ButterworthLP(s.HighCutFreq, 2*s.HighCutOrder, c.sampleRate)
	c.highCut.Update(high, s.HighCutBypassed)
}

// ProcessBlock filters buf in place through the cascade.
// Owned by the real-time thread; no allocation, no locking.
func (c *Chain) ProcessBlock(buf []float64) {
	c.lowCut.ProcessBlock(buf)
	if !c.peakBypassed {
		c.peak.ProcessBlock(buf)
	}
	c.highCut.ProcessBlock(buf)
}

// Magnitude returns the cascade's linear magnitude response at freq, the
// product of all active stages. Bypassed bands contribute unity.
func (c *Chain) Magnitude(freq float64) float64 {
	mag := c.lowCut.Magnitude(freq, c.sampleRate)
	if !c.peakBypassed {
		mag *= c.peak.Magnitude(freq, c.sampleRate)
	}
	mag *= c.highCut.Magnitude(freq, c.sampleRate)

	return mag
}

// SampleRate returns the rate the chain was prepared for.
func (c *Chain) SampleRate() float64 { return c.sampleRate }

// Reset clears all delay-line state.
func (c *Chain) Reset() {
	c.lowCut.Reset()
	c.peak.Reset()
	c.highCut.Reset()
}
