// Package render draws the equalizer display: the analytic response curve
// and the per-channel spectrum paths over a log-frequency grid. The SDL
// backend is compiled in with -tags sdl; without it, Open reports that the
// backend is unavailable so headless builds stay free of cgo.
package render

import (
	"github.com/cwbudde/algo-eq/analyzer"
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/engine"
	"github.com/cwbudde/algo-eq/eq"
)

// Config describes the display window.
type Config struct {
	Title  string
	Width  int
	Height int
}

// DefaultConfig returns a window matching the engine's default display
// bounds.
func DefaultConfig() Config {
	return Config{Title: "algo-eq", Width: 600, Height: 200}
}

// Bounds returns the analyzer bounds matching the window size.
func (c Config) Bounds() analyzer.Bounds {
	return analyzer.Bounds{Width: float64(c.Width), Height: float64(c.Height)}
}

// CurvePoints converts a response curve in dB per column into display
// points. The display dB range maps top to bottom; values outside it clamp
// to the edges.
func CurvePoints(curve []float64, height float64, dst []analyzer.Point) []analyzer.Point {
	dst = dst[:0]

	for x, db := range curve {
		db = core.Clamp(db, eq.MinDisplayDB, eq.MaxDisplayDB)
		y := core.MapLinear(db, eq.MaxDisplayDB, eq.MinDisplayDB, 0, height)

		dst = append(dst, analyzer.Point{X: float32(x), Y: float32(y)})
	}

	return dst
}

// GridFrequencies are the labeled verticals of the log-frequency grid.
var GridFrequencies = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000}

// GridColumns maps GridFrequencies onto column positions for the given
// width.
func GridColumns(width float64) []float64 {
	out := make([]float64, len(GridFrequencies))
	for i, f := range GridFrequencies {
		out[i] = core.MapFromLog10(f, eq.MinDisplayFreq, eq.MaxDisplayFreq) * width
	}

	return out
}

// Display is the renderer's view of the engine: a snapshot source plus the
// window geometry.
type Display struct {
	Engine *engine.Engine
	Config Config
}
