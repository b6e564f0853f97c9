package analyzer

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/spsc"
	"github.com/cwbudde/algo-eq/dsp/window"
)

// DefaultFFTOrder gives a 2048-point transform, a good balance between
// frequency resolution and update rate at audio sample rates.
const DefaultFFTOrder = 11

// DefaultFloorDB is the magnitude floor of a spectrum frame.
const DefaultFloorDB = -48.0

// SpectrumAnalyzer turns a full sample window into a frame of per-bin
// magnitudes in dB. Frames are published through an internal queue so the
// analysis and display sides stay decoupled.
//
// A frame holds fftSize/2 values; bin k covers frequency k*sampleRate/fftSize.
// Magnitudes are normalized by the bin count and clamped at the floor.
type SpectrumAnalyzer struct {
	fftSize int
	floorDB float64

	win    []float64
	plan   *algofft.Plan[complex128]
	input  []complex128
	output []complex128
	re     []float64
	im     []float64
	mags   []float64

	frames *spsc.Queue[[]float64]
}

// SpectrumOption configures a SpectrumAnalyzer.
type SpectrumOption func(*spectrumConfig)

type spectrumConfig struct {
	order    int
	floorDB  float64
	winType  window.Type
	capacity int
}

// WithFFTOrder sets the transform order; the FFT size is 1<<order.
func WithFFTOrder(order int) SpectrumOption {
	return func(c *spectrumConfig) { c.order = order }
}

// WithFloor sets the magnitude floor in dB.
func WithFloor(db float64) SpectrumOption {
	return func(c *spectrumConfig) { c.floorDB = db }
}

// WithWindow sets the analysis window type.
func WithWindow(t window.Type) SpectrumOption {
	return func(c *spectrumConfig) { c.winType = t }
}

// WithFrameCapacity sets the internal frame queue capacity.
func WithFrameCapacity(n int) SpectrumOption {
	return func(c *spectrumConfig) { c.capacity = n }
}

// NewSpectrumAnalyzer returns an analyzer with a planned FFT. The default
// configuration is a 2048-point Blackman-Harris transform with a -48 dB
// floor.
func NewSpectrumAnalyzer(opts ...SpectrumOption) (*SpectrumAnalyzer, error) {
	cfg := spectrumConfig{
		order:    DefaultFFTOrder,
		floorDB:  DefaultFloorDB,
		winType:  window.TypeBlackmanHarris,
		capacity: 32,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.order < 1 || cfg.order > 20 {
		return nil, fmt.Errorf("invalid fft order: %d", cfg.order)
	}

	size := 1 << cfg.order

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum fft plan: %w", err)
	}

	numBins := size / 2

	a := &SpectrumAnalyzer{
		fftSize: size,
		floorDB: cfg.floorDB,
		win:     window.Generate(cfg.winType, size, window.WithPeriodic()),
		plan:    plan,
		input:   make([]complex128, size),
		output:  make([]complex128, size),
		re:      make([]float64, numBins),
		im:      make([]float64, numBins),
		mags:    make([]float64, numBins),
		frames: spsc.New(cfg.capacity,
			spsc.WithSlots(func() []float64 {
				return make([]float64, numBins)
			}),
			spsc.WithCopy(func(dst *[]float64, src []float64) {
				copy(*dst, src)
			}),
		),
	}

	return a, nil
}

// FFTSize returns the transform length.
func (a *SpectrumAnalyzer) FFTSize() int {
	return a.fftSize
}

// NumBins returns the length of a spectrum frame.
func (a *SpectrumAnalyzer) NumBins() int {
	return a.fftSize / 2
}

// FloorDB returns the magnitude floor.
func (a *SpectrumAnalyzer) FloorDB() float64 {
	return a.floorDB
}

// Analyze windows samples, runs the forward transform and publishes a dB
// frame. samples must hold exactly FFTSize values; samples is not modified.
// The frame is dropped when the queue is full.
func (a *SpectrumAnalyzer) Analyze(samples []float64) error {
	if len(samples) != a.fftSize {
		return fmt.Errorf("analyze: got %d samples, want %d", len(samples), a.fftSize)
	}

	for i, s := range samples {
		a.input[i] = complex(s*a.win[i], 0)
	}

	if err := a.plan.Forward(a.output, a.input); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	numBins := a.fftSize / 2
	for k := 0; k < numBins; k++ {
		a.re[k] = real(a.output[k])
		a.im[k] = imag(a.output[k])
	}

	vecmath.Magnitude(a.mags, a.re, a.im)

	norm := float64(numBins)
	for k := range a.mags {
		a.mags[k] = core.LinearToDBWithFloor(a.mags[k]/norm, a.floorDB)
	}

	a.frames.Push(a.mags)

	return nil
}

// PullFrame copies the oldest pending frame into dst, which must hold
// NumBins values. It reports whether a frame was available.
func (a *SpectrumAnalyzer) PullFrame(dst []float64) bool {
	if len(dst) != a.fftSize/2 {
		return false
	}

	return a.frames.Pull(&dst)
}

// AvailableFrames returns the number of pending frames.
func (a *SpectrumAnalyzer) AvailableFrames() int {
	return a.frames.AvailableForReading()
}
