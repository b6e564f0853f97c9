package analyzer

import "fmt"

// PathProducer runs one channel's analysis chain: blocks pushed from the
// processing thread accumulate into a sliding window; each arriving block
// triggers a windowed FFT over the full window, and each resulting frame is
// rendered into a display path.
//
// PushBlock belongs to the processing thread. Process and PullLatest belong
// to the polling thread and the display respectively; the queues between the
// stages keep the three sides lock-free.
type PathProducer struct {
	collector *Collector
	window    *SampleWindow
	spectrum  *SpectrumAnalyzer
	paths     *PathGenerator

	frame []float64
}

// ProducerOption configures a PathProducer.
type ProducerOption func(*producerConfig)

type producerConfig struct {
	spectrumOpts []SpectrumOption
	pathOpts     []PathOption
	capacity     int
}

// WithSpectrum forwards options to the producer's SpectrumAnalyzer.
func WithSpectrum(opts ...SpectrumOption) ProducerOption {
	return func(c *producerConfig) { c.spectrumOpts = append(c.spectrumOpts, opts...) }
}

// WithPaths forwards options to the producer's PathGenerator.
func WithPaths(opts ...PathOption) ProducerOption {
	return func(c *producerConfig) { c.pathOpts = append(c.pathOpts, opts...) }
}

// WithBlockCapacity sets the block queue capacity between the processing and
// polling threads.
func WithBlockCapacity(n int) ProducerOption {
	return func(c *producerConfig) { c.capacity = n }
}

// NewPathProducer returns a producer prepared for blocks of at most
// maxBlockLen samples.
func NewPathProducer(maxBlockLen int, opts ...ProducerOption) (*PathProducer, error) {
	cfg := producerConfig{capacity: 64}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	spectrum, err := NewSpectrumAnalyzer(cfg.spectrumOpts...)
	if err != nil {
		return nil, fmt.Errorf("path producer: %w", err)
	}

	p := &PathProducer{
		collector: NewCollector(cfg.capacity, maxBlockLen),
		window:    NewSampleWindow(spectrum.FFTSize()),
		spectrum:  spectrum,
		paths:     NewPathGenerator(cfg.pathOpts...),
		frame:     make([]float64, spectrum.NumBins()),
	}

	return p, nil
}

// Prepare discards queued blocks and zero-fills the sliding window for a new
// stream. It must not race with PushBlock or Process.
func (p *PathProducer) Prepare(maxBlockLen int) {
	p.collector.Prepare(p.collector.queue.Capacity(), maxBlockLen)
	p.window.Reset()
}

// PushBlock enqueues a copy of samples for analysis. It returns false when
// the block was dropped. Called from the processing thread.
func (p *PathProducer) PushBlock(samples []float64) bool {
	return p.collector.PushBlock(samples)
}

// Process drains pending blocks, running one FFT per block over the updated
// window, then renders every completed frame into bounds. Called from the
// polling thread.
func (p *PathProducer) Process(bounds Bounds, sampleRate float64) {
	for {
		block, ok := p.collector.PullBlock()
		if !ok {
			break
		}

		p.window.Append(block)
		_ = p.spectrum.Analyze(p.window.Samples())
	}

	binWidth := sampleRate / float64(p.spectrum.FFTSize())
	for p.spectrum.PullFrame(p.frame) {
		p.paths.Generate(p.frame, bounds, p.spectrum.FFTSize(), binWidth)
	}
}

// PullLatest drains pending paths into dst, keeping the newest. It reports
// whether any path was pulled.
func (p *PathProducer) PullLatest(dst *Path) bool {
	return p.paths.PullLatest(dst)
}

// FFTSize returns the producer's transform length.
func (p *PathProducer) FFTSize() int {
	return p.spectrum.FFTSize()
}
