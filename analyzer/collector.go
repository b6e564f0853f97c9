package analyzer

import "github.com/cwbudde/algo-eq/dsp/spsc"

// collectorBlock carries one audio block through the lock-free queue. The
// backing slice is owned by the queue slot; n is the valid sample count.
type collectorBlock struct {
	n       int
	samples []float64
}

// Collector hands audio blocks from the processing thread to the analysis
// side. PushBlock copies the block into preallocated queue storage and drops
// it when the queue is full, so the processing thread never blocks and never
// allocates.
type Collector struct {
	queue    *spsc.Queue[collectorBlock]
	scratch  collectorBlock
	maxBlock int
}

// NewCollector returns a Collector holding up to capacity blocks of at most
// maxBlockLen samples each.
func NewCollector(capacity, maxBlockLen int) *Collector {
	c := &Collector{}
	c.Prepare(capacity, maxBlockLen)

	return c
}

// Prepare resets the collector, discarding queued blocks and reallocating
// slot storage. It must not race with PushBlock or PullBlock.
func (c *Collector) Prepare(capacity, maxBlockLen int) {
	if maxBlockLen < 1 {
		maxBlockLen = 1
	}

	c.maxBlock = maxBlockLen
	c.queue = spsc.New(capacity,
		spsc.WithSlots(func() collectorBlock {
			return collectorBlock{samples: make([]float64, maxBlockLen)}
		}),
		spsc.WithCopy(func(dst *collectorBlock, src collectorBlock) {
			dst.n = copy(dst.samples, src.samples[:src.n])
		}),
	)
	c.scratch = collectorBlock{samples: make([]float64, maxBlockLen)}
}

// PushBlock enqueues a copy of samples. It returns false, dropping the block,
// when the queue is full or the block exceeds the prepared maximum length.
// Safe for exactly one producer.
func (c *Collector) PushBlock(samples []float64) bool {
	if len(samples) == 0 || len(samples) > c.maxBlock {
		return false
	}

	return c.queue.Push(collectorBlock{n: len(samples), samples: samples})
}

// PullBlock dequeues the oldest block. The returned slice is valid until the
// next PullBlock or Prepare call. Safe for exactly one consumer.
func (c *Collector) PullBlock() ([]float64, bool) {
	if !c.queue.Pull(&c.scratch) {
		return nil, false
	}

	return c.scratch.samples[:c.scratch.n], true
}

// AvailableForReading returns the number of queued blocks.
func (c *Collector) AvailableForReading() int {
	return c.queue.AvailableForReading()
}

// SampleWindow is a fixed-length sliding window of the most recent samples.
// Append shifts older samples toward the front and places the new block at
// the end, so index len-1 always holds the newest sample.
type SampleWindow struct {
	buf []float64
}

// NewSampleWindow returns a zero-filled window of the given length.
func NewSampleWindow(length int) *SampleWindow {
	if length < 1 {
		length = 1
	}

	return &SampleWindow{buf: make([]float64, length)}
}

// Append slides the window left by len(block) and copies block at the end.
// Blocks longer than the window keep only their newest samples.
func (w *SampleWindow) Append(block []float64) {
	n := len(block)
	if n == 0 {
		return
	}

	if n >= len(w.buf) {
		copy(w.buf, block[n-len(w.buf):])
		return
	}

	copy(w.buf, w.buf[n:])
	copy(w.buf[len(w.buf)-n:], block)
}

// Samples exposes the window contents, oldest first. The slice aliases the
// internal buffer; callers must not retain it across Append.
func (w *SampleWindow) Samples() []float64 {
	return w.buf
}

// Reset zero-fills the window.
func (w *SampleWindow) Reset() {
	for i := range w.buf {
		w.buf[i] = 0
	}
}

// Len returns the window length.
func (w *SampleWindow) Len() int {
	return len(w.buf)
}
