// Command eqdemo runs the equalizer on live audio: a sine generator or the
// default PortAudio input feeds the stereo filter chain, the result plays
// through the default output, and the display is served over HTTP and,
// when built with -tags sdl, in a native window.
//
// Keys: q quits, +/- peak gain, [/] peak frequency, ,/. peak Q, l/L and h/H
// move the cut frequencies, s/S cycle the cut slopes, 1/2/3 bypass bands,
// a toggles the analyzer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/cwbudde/algo-eq/engine"
	"github.com/cwbudde/algo-eq/eq"
	"github.com/cwbudde/algo-eq/internal/render"
	"github.com/cwbudde/algo-eq/internal/web"
	"github.com/cwbudde/algo-eq/param"
	"github.com/cwbudde/algo-eq/state"
)

func main() {
	var (
		sampleRate = flag.Float64("sample-rate", 48000, "Sample rate in Hz")
		blockLen   = flag.Int("block", 512, "Processing block length in samples")
		input      = flag.String("input", "sine", "Audio source: sine or capture")
		sineFreq   = flag.Float64("freq", 440, "Sine source frequency in Hz")
		httpAddr   = flag.String("http", ":8080", "HTTP listen address (empty to disable)")
		useSDL     = flag.Bool("window", false, "Open the SDL display window (requires -tags sdl)")
		preset     = flag.String("preset", "", "Preset file to load on start and save on exit")
	)

	flag.Parse()

	logger := log.New(os.Stderr, "[eqdemo] ", log.LstdFlags)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := param.NewRegistry()
	states := state.NewManager(registry)

	if *preset != "" {
		if err := loadPreset(states, *preset); err != nil {
			logger.Printf("preset not loaded: %v", err)
		}
	}

	eng, err := engine.New(registry, *sampleRate, *blockLen)
	if err != nil {
		logger.Fatalf("engine: %v", err)
	}

	go func() { _ = eng.Run(ctx) }()

	if *httpAddr != "" {
		srv := web.NewServer(eng)
		go func() {
			if err := srv.Run(ctx, *httpAddr); err != nil && err != context.Canceled {
				logger.Printf("web server: %v", err)
			}
		}()
	}

	src, err := openSource(*input, *sineFreq, *sampleRate, *blockLen)
	if err != nil {
		logger.Fatalf("audio source: %v", err)
	}
	defer src.Close()

	out, err := newPlayer(eng, *sampleRate, *blockLen, src)
	if err != nil {
		logger.Fatalf("audio output: %v", err)
	}
	defer out.Close()

	out.Start()

	quit := startInputListener(ctx, registry)

	if *useSDL {
		if !render.SupportsSDL() {
			logger.Fatal("window requested but SDL backend not compiled in; rebuild with -tags sdl")
		}

		runWindow(ctx, cancel, eng, logger)
	} else {
		runStatus(ctx, quit, registry, logger)
	}

	if *preset != "" {
		if err := savePreset(states, *preset); err != nil {
			logger.Printf("preset not saved: %v", err)
		}
	}
}

func openSource(kind string, freq, sampleRate float64, blockLen int) (source, error) {
	switch kind {
	case "sine":
		return newSineSource(freq, sampleRate, blockLen), nil
	case "capture":
		return newCaptureSource(sampleRate, blockLen)
	default:
		return nil, fmt.Errorf("unknown input %q (want sine or capture)", kind)
	}
}

func runWindow(ctx context.Context, cancel context.CancelFunc, eng *engine.Engine, logger *log.Logger) {
	win, err := render.Open(render.DefaultConfig())
	if err != nil {
		logger.Fatalf("display: %v", err)
	}
	defer win.Close()

	if err := win.Loop(ctx, eng); err != nil && err != context.Canceled {
		logger.Printf("display: %v", err)
	}

	cancel()
}

func runStatus(ctx context.Context, quit <-chan struct{}, registry *param.Registry, logger *log.Logger) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case <-quit:
			fmt.Println()
			return
		case <-ticker.C:
			fmt.Printf("\r%s", statusLine(registry.Settings(), registry.AnalyzerEnabled()))
		}
	}
}

func statusLine(s eq.Settings, analyzerOn bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "low %5.0f Hz/%d", s.LowCutFreq, 12*s.LowCutOrder)
	if s.LowCutBypassed {
		b.WriteString(" (byp)")
	}

	fmt.Fprintf(&b, " | peak %5.0f Hz %+5.1f dB Q %.2f", s.PeakFreq, s.PeakGainDB, s.PeakQ)
	if s.PeakBypassed {
		b.WriteString(" (byp)")
	}

	fmt.Fprintf(&b, " | high %5.0f Hz/%d", s.HighCutFreq, 12*s.HighCutOrder)
	if s.HighCutBypassed {
		b.WriteString(" (byp)")
	}

	if analyzerOn {
		b.WriteString(" | fft on")
	} else {
		b.WriteString(" | fft off")
	}

	line := b.String()
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && len(line) > w {
		line = line[:w]
	}

	return line
}

func loadPreset(states *state.Manager, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return states.Load(f)
}

func savePreset(states *state.Manager, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := states.Save(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
