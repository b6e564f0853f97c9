// Package window generates analysis window functions for the spectrum
// pipeline and applies them to sample buffers.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of the default
// symmetric form.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length, cfg.periodic)
		out[i] = evalWindow(t, x)
	}

	return out
}

// Apply multiplies buf in-place by the precomputed coefficients.
// Lengths must match; buf is left untouched otherwise.
func Apply(buf, coeffs []float64) {
	if len(buf) == 0 || len(buf) != len(coeffs) {
		return
	}

	vecmath.MulBlockInPlace(buf, coeffs)
}

// CoherentGain returns the mean of the coefficients, i.e. the amplitude
// scaling a windowed sine experiences relative to a rectangular window.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs))
}

func samplePosition(i, length int, periodic bool) float64 {
	if periodic {
		return float64(i) / float64(length)
	}
	if length == 1 {
		return 0.5
	}

	return float64(i) / float64(length-1)
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(2*math.Pi*x)
	case TypeBlackman:
		return 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
	case TypeBlackmanHarris:
		// 4-term minimum sidelobe coefficients (-92 dB).
		return 0.35875 -
			0.48829*math.Cos(2*math.Pi*x) +
			0.14128*math.Cos(4*math.Pi*x) -
			0.01168*math.Cos(6*math.Pi*x)
	default:
		return 1
	}
}
