package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-eq/analyzer"
	"github.com/cwbudde/algo-eq/dsp/osc"
	"github.com/cwbudde/algo-eq/engine"
)

// source produces one stereo block per call. Fill runs on the playback
// thread.
type source interface {
	Fill(left, right []float64)
	Close() error
}

// sineSource is the built-in test signal.
type sineSource struct {
	osc *osc.Sine
	buf []float64
}

func newSineSource(freq, sampleRate float64, blockLen int) *sineSource {
	s := osc.NewSine(freq, sampleRate)
	s.SetAmplitude(0.5)

	return &sineSource{osc: s, buf: make([]float64, blockLen)}
}

func (s *sineSource) Fill(left, right []float64) {
	s.osc.Fill(s.buf)
	copy(left, s.buf)
	copy(right, s.buf)
}

func (s *sineSource) Close() error { return nil }

var paInitOnce sync.Once

// captureSource feeds mono PortAudio input to both channels. The capture
// callback never blocks; blocks queue through a collector and playback pads
// with silence on underrun.
type captureSource struct {
	stream  *portaudio.Stream
	queue   *analyzer.Collector
	scratch []float64
	pending []float64
}

func newCaptureSource(sampleRate float64, blockLen int) (*captureSource, error) {
	var initErr error
	paInitOnce.Do(func() { initErr = portaudio.Initialize() })
	if initErr != nil {
		return nil, fmt.Errorf("portaudio: %w", initErr)
	}

	c := &captureSource{
		queue:   analyzer.NewCollector(16, 4*blockLen),
		scratch: make([]float64, 4*blockLen),
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, blockLen, c.process)
	if err != nil {
		return nil, fmt.Errorf("open capture stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("start capture stream: %w", err)
	}

	c.stream = stream

	return c, nil
}

func (c *captureSource) process(in []float32) {
	n := len(in)
	if n > len(c.scratch) {
		n = len(c.scratch)
	}

	for i := 0; i < n; i++ {
		c.scratch[i] = float64(in[i])
	}

	c.queue.PushBlock(c.scratch[:n])
}

func (c *captureSource) Fill(left, right []float64) {
	need := len(left)

	for len(c.pending) < need {
		block, ok := c.queue.PullBlock()
		if !ok {
			break
		}

		c.pending = append(c.pending, block...)
	}

	n := copy(left, c.pending)
	for i := n; i < need; i++ {
		left[i] = 0
	}

	c.pending = c.pending[:copy(c.pending, c.pending[n:])]

	copy(right, left)
}

func (c *captureSource) Close() error {
	if c.stream == nil {
		return nil
	}

	if err := c.stream.Stop(); err != nil {
		c.stream.Close()
		return err
	}

	return c.stream.Close()
}

// player drives the engine from the oto playback callback: each Read pulls
// blocks from the source, filters them, and hands interleaved float32
// frames to the device.
type player struct {
	ctx    *oto.Context
	handle *oto.Player

	engine *engine.Engine
	src    source

	left  []float64
	right []float64

	pend    []byte
	pendOff int
}

const bytesPerFrame = 8 // two float32 channels

func newPlayer(e *engine.Engine, sampleRate float64, blockLen int, src source) (*player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   int(sampleRate),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("oto: %w", err)
	}
	<-ready

	p := &player{
		ctx:    ctx,
		engine: e,
		src:    src,
		left:   make([]float64, blockLen),
		right:  make([]float64, blockLen),
		pend:   make([]byte, 0, blockLen*bytesPerFrame),
	}

	p.handle = ctx.NewPlayer(p)

	return p, nil
}

func (p *player) Start() { p.handle.Play() }

func (p *player) Close() error { return p.handle.Close() }

func (p *player) Read(out []byte) (int, error) {
	n := 0

	for n < len(out) {
		if p.pendOff == len(p.pend) {
			p.renderBlock()
		}

		c := copy(out[n:], p.pend[p.pendOff:])
		p.pendOff += c
		n += c
	}

	return n, nil
}

func (p *player) renderBlock() {
	p.src.Fill(p.left, p.right)
	p.engine.ProcessBlock(p.left, p.right)

	p.pend = p.pend[:cap(p.pend)]
	for i := range p.left {
		off := i * bytesPerFrame
		binary.LittleEndian.PutUint32(p.pend[off:], math.Float32bits(float32(p.left[i])))
		binary.LittleEndian.PutUint32(p.pend[off+4:], math.Float32bits(float32(p.right[i])))
	}

	p.pendOff = 0
}
