package analyzer

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/spsc"
	"github.com/cwbudde/algo-eq/eq"
)

// Point is a display-space coordinate. X grows rightward, Y grows downward.
type Point struct {
	X float32
	Y float32
}

// Path is a polyline over display space, ready to be stroked by a renderer.
type Path struct {
	Points []Point
}

// Bounds describes the display area a path is generated into. The origin is
// the top-left corner; the magnitude floor maps to Height, 0 dB maps to 0.
type Bounds struct {
	Width  float64
	Height float64
}

// PathGenerator converts spectrum frames into display paths on a
// log-frequency axis. Generated paths are published through an internal
// queue; the display side drains it and keeps the newest.
type PathGenerator struct {
	resolution int
	floorDB    float64

	paths   *spsc.Queue[Path]
	scratch Path
}

// PathOption configures a PathGenerator.
type PathOption func(*pathConfig)

type pathConfig struct {
	resolution int
	floorDB    float64
	capacity   int
}

// WithResolution sets the bin stride; every resolution-th bin contributes a
// point. Higher values trade horizontal detail for cheaper paths.
func WithResolution(n int) PathOption {
	return func(c *pathConfig) { c.resolution = n }
}

// WithPathFloor sets the dB value that maps to the bottom of the bounds.
func WithPathFloor(db float64) PathOption {
	return func(c *pathConfig) { c.floorDB = db }
}

// WithPathCapacity sets the internal path queue capacity.
func WithPathCapacity(n int) PathOption {
	return func(c *pathConfig) { c.capacity = n }
}

// NewPathGenerator returns a generator with bin stride 2 and the default
// -48 dB floor.
func NewPathGenerator(opts ...PathOption) *PathGenerator {
	cfg := pathConfig{
		resolution: 2,
		floorDB:    DefaultFloorDB,
		capacity:   32,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.resolution < 1 {
		cfg.resolution = 1
	}

	return &PathGenerator{
		resolution: cfg.resolution,
		floorDB:    cfg.floorDB,
		paths: spsc.New(cfg.capacity,
			spsc.WithCopy(func(dst *Path, src Path) {
				dst.Points = append(dst.Points[:0], src.Points...)
			}),
		),
	}
}

// Generate maps frame onto bounds and publishes the resulting path. frame
// holds fftSize/2 dB magnitudes; binWidth is sampleRate/fftSize in Hz.
//
// Bin zero anchors the path at the left edge. Bins below the displayed
// minimum frequency and non-finite magnitudes contribute no point; the path
// continues at the next valid bin. The path is dropped when the queue is
// full.
func (g *PathGenerator) Generate(frame []float64, bounds Bounds, fftSize int, binWidth float64) {
	numBins := fftSize / 2
	if len(frame) < numBins || numBins < 1 {
		return
	}

	g.scratch.Points = g.scratch.Points[:0]

	if y, ok := g.mapY(frame[0], bounds); ok {
		g.scratch.Points = append(g.scratch.Points, Point{X: 0, Y: y})
	}

	for bin := 1; bin < numBins; bin += g.resolution {
		y, ok := g.mapY(frame[bin], bounds)
		if !ok {
			continue
		}

		binFreq := float64(bin) * binWidth
		if binFreq < eq.MinDisplayFreq {
			continue
		}

		normX := core.MapFromLog10(binFreq, eq.MinDisplayFreq, eq.MaxDisplayFreq)
		x := math.Floor(normX * bounds.Width)

		g.scratch.Points = append(g.scratch.Points, Point{X: float32(x), Y: y})
	}

	g.paths.Push(g.scratch)
}

func (g *PathGenerator) mapY(db float64, bounds Bounds) (float32, bool) {
	y := core.MapLinear(db, g.floorDB, 0, bounds.Height, 0)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}

	return float32(y), true
}

// PullPath copies the oldest pending path into dst. It reports whether a
// path was available.
func (g *PathGenerator) PullPath(dst *Path) bool {
	return g.paths.Pull(dst)
}

// PullLatest drains all pending paths into dst, keeping the newest. It
// reports whether any path was pulled.
func (g *PathGenerator) PullLatest(dst *Path) bool {
	pulled := false
	for g.paths.Pull(dst) {
		pulled = true
	}

	return pulled
}

// AvailablePaths returns the number of pending paths.
func (g *PathGenerator) AvailablePaths() int {
	return g.paths.AvailableForReading()
}
