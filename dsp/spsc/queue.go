package spsc

import "sync/atomic"

// Queue is a single-producer/single-consumer ring of fixed capacity.
//
// At most one goroutine may call Push and at most one goroutine may call
// Pull for the lifetime of the queue. Prepare is not safe to call
// concurrently with either; the caller serializes setup.
//
// The read and write cursors are monotonically increasing counters; their
// difference is the number of unread items. Atomic loads and stores give the
// reader a published item before it observes the advanced write cursor, and
// give the writer a freed slot before it observes the advanced read cursor.
type Queue[T any] struct {
	slots []T

	read  atomic.Uint64
	write atomic.Uint64

	newSlot func() T
	copyFn  func(dst *T, src T)
}

// Option configures a Queue.
type Option[T any] func(*Queue[T])

// WithSlots supplies a slot initializer, invoked once per slot on Prepare.
// Use it to preallocate slice-backed payloads so Push never allocates.
func WithSlots[T any](fn func() T) Option[T] {
	return func(q *Queue[T]) { q.newSlot = fn }
}

// WithCopy supplies the copy used to move items into and out of slots.
// Without it, items are moved by plain assignment, which aliases any
// reference types contained in T.
func WithCopy[T any](fn func(dst *T, src T)) Option[T] {
	return func(q *Queue[T]) { q.copyFn = fn }
}

// New returns a Queue prepared with the given capacity.
func New[T any](capacity int, opts ...Option[T]) *Queue[T] {
	q := &Queue[T]{}
	for _, o := range opts {
		o(q)
	}
	q.Prepare(capacity)

	return q
}

// Prepare resets the queue to empty with the given capacity, reallocating
// slots. It must not race with Push or Pull.
func (q *Queue[T]) Prepare(capacity int) {
	if capacity < 1 {
		capacity = 1
	}

	q.slots = make([]T, capacity)
	if q.newSlot != nil {
		for i := range q.slots {
			q.slots[i] = q.newSlot()
		}
	}

	q.read.Store(0)
	q.write.Store(0)
}

// Push copies item into the next write slot and publishes it.
// It returns false, dropping the item, when the queue is full.
// Safe for exactly one producer; never blocks, never allocates.
func (q *Queue[T]) Push(item T) bool {
	w := q.write.Load()
	r := q.read.Load()
	if w-r == uint64(len(q.slots)) {
		return false
	}

	slot := &q.slots[w%uint64(len(q.slots))]
	if q.copyFn != nil {
		q.copyFn(slot, item)
	} else {
		*slot = item
	}

	q.write.Store(w + 1)

	return true
}

// Pull copies the oldest unread item into out and frees its slot.
// It returns false, leaving out untouched, when the queue is empty.
// Safe for exactly one consumer; never blocks.
func (q *Queue[T]) Pull(out *T) bool {
	r := q.read.Load()
	w := q.write.Load()
	if r == w {
		return false
	}

	slot := &q.slots[r%uint64(len(q.slots))]
	if q.copyFn != nil {
		q.copyFn(out, *slot)
	} else {
		*out = *slot
	}

	q.read.Store(r + 1)

	return true
}

// AvailableForReading returns the number of unread items.
func (q *Queue[T]) AvailableForReading() int {
	return int(q.write.Load() - q.read.Load())
}

// Capacity returns the fixed slot count set by Prepare.
func (q *Queue[T]) Capacity() int {
	return len(q.slots)
}
