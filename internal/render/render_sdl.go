//go:build sdl

package render

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/cwbudde/algo-eq/analyzer"
	"github.com/cwbudde/algo-eq/engine"
)

// SupportsSDL reports whether the SDL backend was compiled in.
func SupportsSDL() bool { return true }

// Window is an open SDL display.
type Window struct {
	cfg      Config
	window   *sdl.Window
	renderer *sdl.Renderer

	snapshot engine.Display
	version  uint64
	curve    []analyzer.Point
}

// Open creates the display window.
func Open(cfg Config) (*Window, error) {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	win, err := sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("render: %w", err)
	}

	renderer, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		win.Destroy()
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("render: %w", err)
	}

	return &Window{cfg: cfg, window: win, renderer: renderer}, nil
}

// Close tears the window down.
func (w *Window) Close() error {
	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.window != nil {
		w.window.Destroy()
	}
	sdl.QuitSubSystem(sdl.INIT_VIDEO)

	return nil
}

// Loop draws engine snapshots until ctx is done or the window is closed.
func (w *Window) Loop(ctx context.Context, e *engine.Engine) error {
	ticker := time.NewTicker(engine.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			if _, ok := ev.(*sdl.QuitEvent); ok {
				return nil
			}
		}

		w.version = e.Snapshot(&w.snapshot)
		if err := w.draw(); err != nil {
			return err
		}
	}
}

func (w *Window) draw() error {
	if err := w.renderer.SetDrawColor(12, 12, 16, 255); err != nil {
		return err
	}
	if err := w.renderer.Clear(); err != nil {
		return err
	}

	w.drawGrid()

	// Spectrum behind the curve, dimmer per channel.
	w.renderer.SetDrawColor(80, 180, 220, 255)
	w.drawPath(w.snapshot.Left.Points)

	w.renderer.SetDrawColor(220, 180, 80, 255)
	w.drawPath(w.snapshot.Right.Points)

	w.renderer.SetDrawColor(240, 240, 240, 255)
	w.curve = CurvePoints(w.snapshot.Curve, float64(w.cfg.Height), w.curve)
	w.drawPath(w.curve)

	w.renderer.Present()

	return nil
}

func (w *Window) drawGrid() {
	w.renderer.SetDrawColor(40, 40, 48, 255)

	for _, x := range GridColumns(float64(w.cfg.Width)) {
		w.renderer.DrawLine(int32(x), 0, int32(x), int32(w.cfg.Height))
	}

	// 0 dB midline.
	mid := int32(w.cfg.Height / 2)
	w.renderer.DrawLine(0, mid, int32(w.cfg.Width), mid)
}

func (w *Window) drawPath(points []analyzer.Point) {
	for i := 1; i < len(points); i++ {
		w.renderer.DrawLine(
			int32(points[i-1].X), int32(points[i-1].Y),
			int32(points[i].X), int32(points[i].Y),
		)
	}
}
