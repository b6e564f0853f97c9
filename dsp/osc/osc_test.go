package osc

import (
	"math"
	"testing"
)

func TestSineMatchesMathSin(t *testing.T) {
	const (
		sampleRate = 48000.0
		freq       = 1000.0
	)

	s := NewSine(freq, sampleRate)
	for i := 0; i < 480; i++ {
		want := math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
		got := s.Next()
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestFillAmplitude(t *testing.T) {
	s := NewSine(440, 44100)
	s.SetAmplitude(0.25)

	buf := make([]float64, 44100)
	s.Fill(buf)

	peak := 0.0
	for _, v := range buf {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-0.25) > 1e-3 {
		t.Fatalf("peak %v, want 0.25", peak)
	}
}

func TestPhaseWraps(t *testing.T) {
	s := NewSine(20000, 48000)
	for i := 0; i < 1_000_000; i++ {
		v := s.Next()
		if math.Abs(v) > 1.0+1e-9 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}
