// Package engine ties the parameter store, the stereo filter chains and the
// spectrum analysis into one processor. The audio thread calls ProcessBlock;
// a polling goroutine (Run or manual Poll calls) turns queued analysis data
// and parameter edits into display snapshots.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cwbudde/algo-eq/analyzer"
	"github.com/cwbudde/algo-eq/eq"
	"github.com/cwbudde/algo-eq/param"
)

// PollInterval is the default display update rate.
const PollInterval = time.Second / 60

// Display is one snapshot of everything the renderer draws: the analytic
// response curve in dB per column and the latest spectrum path per channel.
type Display struct {
	Curve []float64
	Left  analyzer.Path
	Right analyzer.Path
}

// Engine is the stereo equalizer processor.
//
// Thread model: exactly one audio goroutine calls ProcessBlock, exactly one
// polling goroutine calls Poll, and any goroutine edits parameters through
// the registry. Prepare and Release must not overlap either.
type Engine struct {
	registry *param.Registry

	sampleRate float64
	maxBlock   int

	left  *eq.Chain
	right *eq.Chain

	// curveChain never processes audio; it only carries coefficients for
	// the response curve so Poll does not touch the audio chains.
	curveChain *eq.Chain

	producers [2]*analyzer.PathProducer

	bounds analyzer.Bounds

	mu      sync.Mutex
	display Display
	version uint64
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	bounds       analyzer.Bounds
	producerOpts []analyzer.ProducerOption
}

// WithDisplayBounds sets the area spectrum paths are generated into.
func WithDisplayBounds(b analyzer.Bounds) Option {
	return func(c *config) { c.bounds = b }
}

// WithAnalyzer forwards options to both channel path producers.
func WithAnalyzer(opts ...analyzer.ProducerOption) Option {
	return func(c *config) { c.producerOpts = append(c.producerOpts, opts...) }
}

// New returns an engine bound to registry, prepared for the given sample
// rate and maximum block length.
func New(registry *param.Registry, sampleRate float64, maxBlock int, opts ...Option) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("engine: invalid sample rate %v", sampleRate)
	}

	if maxBlock < 1 {
		return nil, fmt.Errorf("engine: invalid block length %d", maxBlock)
	}

	cfg := config{bounds: analyzer.Bounds{Width: 600, Height: 200}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	e := &Engine{
		registry:   registry,
		sampleRate: sampleRate,
		maxBlock:   maxBlock,
		bounds:     cfg.bounds,
	}

	for i := range e.producers {
		p, err := analyzer.NewPathProducer(maxBlock, cfg.producerOpts...)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}

		e.producers[i] = p
	}

	s := registry.Settings()
	e.left = eq.NewChain(sampleRate)
	e.left.Prepare(sampleRate, s)
	e.right = eq.NewChain(sampleRate)
	e.right.Prepare(sampleRate, s)
	e.curveChain = eq.NewChain(sampleRate)
	e.curveChain.Prepare(sampleRate, s)

	e.display.Curve = make([]float64, int(cfg.bounds.Width))
	e.curveChain.ResponseDB(e.display.Curve)

	return e, nil
}

// Prepare resets filter state and analysis queues for a new stream. The
// engine keeps its sample rate; use New for a different one.
func (e *Engine) Prepare() {
	s := e.registry.Settings()
	e.left.Prepare(e.sampleRate, s)
	e.right.Prepare(e.sampleRate, s)

	for _, p := range e.producers {
		p.Prepare(e.maxBlock)
	}

	e.registry.MarkDirty()
}

// Release drops queued analysis data. The engine may be prepared again.
func (e *Engine) Release() {
	for _, p := range e.producers {
		p.Prepare(e.maxBlock)
	}
}

// ProcessBlock filters one stereo block in place. Both channels must be the
// same length, at most the prepared maximum. Called from the audio thread.
func (e *Engine) ProcessBlock(left, right []float64) {
	s := e.registry.Settings()
	e.left.Update(s)
	e.right.Update(s)

	e.left.ProcessBlock(left)
	e.right.ProcessBlock(right)

	if e.registry.AnalyzerEnabled() {
		e.producers[0].PushBlock(left)
		e.producers[1].PushBlock(right)
	}
}

// Poll advances the display side: drains queued analysis blocks into new
// spectrum paths and, when parameters changed, recomputes the response
// curve. Called from the polling thread.
func (e *Engine) Poll() {
	for _, p := range e.producers {
		p.Process(e.bounds, e.sampleRate)
	}

	var leftPath, rightPath analyzer.Path
	gotLeft := e.producers[0].PullLatest(&leftPath)
	gotRight := e.producers[1].PullLatest(&rightPath)

	dirty := e.registry.TakeDirty()

	e.mu.Lock()
	defer e.mu.Unlock()

	changed := false

	if gotLeft {
		e.display.Left.Points = append(e.display.Left.Points[:0], leftPath.Points...)
		changed = true
	}

	if gotRight {
		e.display.Right.Points = append(e.display.Right.Points[:0], rightPath.Points...)
		changed = true
	}

	if dirty {
		e.curveChain.Update(e.registry.Settings())
		e.curveChain.ResponseDB(e.display.Curve)
		changed = true
	}

	if changed {
		e.version++
	}
}

// Run polls at the display rate until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Poll()
		}
	}
}

// Snapshot copies the current display state into dst and returns a version
// counter that increments whenever the snapshot content changes.
func (e *Engine) Snapshot(dst *Display) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	dst.Curve = append(dst.Curve[:0], e.display.Curve...)
	dst.Left.Points = append(dst.Left.Points[:0], e.display.Left.Points...)
	dst.Right.Points = append(dst.Right.Points[:0], e.display.Right.Points...)

	return e.version
}

// Bounds returns the display area paths are generated into.
func (e *Engine) Bounds() analyzer.Bounds {
	return e.bounds
}

// SampleRate returns the prepared sample rate.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// Registry returns the engine's parameter registry.
func (e *Engine) Registry() *param.Registry {
	return e.registry
}
