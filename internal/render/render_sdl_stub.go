//go:build !sdl

package render

import (
	"context"
	"errors"

	"github.com/cwbudde/algo-eq/engine"
)

// ErrNoBackend reports a build without the SDL display.
var ErrNoBackend = errors.New("render: SDL backend not enabled; rebuild with -tags sdl")

// SupportsSDL reports whether the SDL backend was compiled in.
func SupportsSDL() bool { return false }

// Window is an open SDL display. Without the sdl build tag it cannot be
// created.
type Window struct{}

// Open fails; the SDL backend was not compiled in.
func Open(Config) (*Window, error) {
	return nil, ErrNoBackend
}

// Close is a no-op on the stub.
func (w *Window) Close() error { return nil }

// Loop fails immediately on the stub.
func (w *Window) Loop(context.Context, *engine.Engine) error {
	return ErrNoBackend
}
