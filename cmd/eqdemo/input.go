package main

import (
	"context"
	"log"
	"sync"

	"github.com/eiannone/keyboard"

	"github.com/cwbudde/algo-eq/param"
)

// startInputListener reads keystrokes and applies them to the registry.
// It returns a channel closed when the user quits, or nil when no keyboard
// is available.
func startInputListener(ctx context.Context, registry *param.Registry) <-chan struct{} {
	if err := keyboard.Open(); err != nil {
		log.Printf("keyboard input disabled: %v", err)
		return nil
	}

	quit := make(chan struct{})

	closeOnce := &sync.Once{}
	go func() {
		<-ctx.Done()
		closeOnce.Do(func() { _ = keyboard.Close() })
	}()

	go func() {
		defer closeOnce.Do(func() { _ = keyboard.Close() })

		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}

			select {
			case <-ctx.Done():
				return
			default:
			}

			if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || char == 'q' {
				close(quit)
				return
			}

			applyKey(registry, char)
		}
	}()

	return quit
}

func applyKey(registry *param.Registry, char rune) {
	adjust := func(id uint32, factor float64) {
		p := registry.Get(id)
		p.SetValue(p.Value() * factor)
	}

	nudge := func(id uint32, delta float64) {
		p := registry.Get(id)
		p.SetValue(p.Value() + delta)
	}

	toggle := func(id uint32) {
		p := registry.Get(id)
		p.SetBool(!p.Bool())
	}

	cycle := func(id uint32) {
		p := registry.Get(id)
		p.SetIndex((p.Index() + 1) % (p.Steps + 1))
	}

	switch char {
	case '+', '=':
		nudge(param.IDPeakGain, 1)
	case '-', '_':
		nudge(param.IDPeakGain, -1)
	case ']':
		adjust(param.IDPeakFreq, 1.1)
	case '[':
		adjust(param.IDPeakFreq, 1/1.1)
	case '.', '>':
		nudge(param.IDPeakQuality, 0.1)
	case ',', '<':
		nudge(param.IDPeakQuality, -0.1)
	case 'L':
		adjust(param.IDLowCutFreq, 1.1)
	case 'l':
		adjust(param.IDLowCutFreq, 1/1.1)
	case 'H':
		adjust(param.IDHighCutFreq, 1.1)
	case 'h':
		adjust(param.IDHighCutFreq, 1/1.1)
	case 's':
		cycle(param.IDLowCutSlope)
	case 'S':
		cycle(param.IDHighCutSlope)
	case '1':
		toggle(param.IDLowCutBypassed)
	case '2':
		toggle(param.IDPeakBypassed)
	case '3':
		toggle(param.IDHighCutBypassed)
	case 'a':
		toggle(param.IDAnalyzerEnabled)
	}
}
