// Package osc provides a phase-accumulating sine oscillator used as a
// deterministic test and demo signal source.
package osc

import "math"

// Sine is a free-running sine oscillator. It is not safe for concurrent use;
// one goroutine owns it.
type Sine struct {
	sampleRate float64
	phase      float64
	step       float64
	amplitude  float64
}

// NewSine returns an oscillator at the given frequency and unit amplitude.
func NewSine(freqHz, sampleRate float64) *Sine {
	s := &Sine{sampleRate: sampleRate, amplitude: 1}
	s.SetFrequency(freqHz)

	return s
}

// SetFrequency changes the oscillator frequency without resetting phase.
func (s *Sine) SetFrequency(freqHz float64) {
	if s.sampleRate <= 0 {
		return
	}
	s.step = 2 * math.Pi * freqHz / s.sampleRate
}

// SetAmplitude sets the linear output amplitude.
func (s *Sine) SetAmplitude(a float64) {
	s.amplitude = a
}

// Next returns the next sample and advances the phase.
func (s *Sine) Next() float64 {
	v := s.amplitude * math.Sin(s.phase)

	s.phase += s.step
	if s.phase >= 2*math.Pi {
		s.phase -= 2 * math.Pi
	}

	return v
}

// Fill writes len(buf) samples into buf.
func (s *Sine) Fill(buf []float64) {
	for i := range buf {
		buf[i] = s.Next()
	}
}

// Reset zeroes the oscillator phase.
func (s *Sine) Reset() {
	s.phase = 0
}
