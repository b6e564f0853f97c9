// Package spsc provides a fixed-capacity lock-free ring buffer for exactly
// one producer goroutine and one consumer goroutine.
//
// The queue never blocks: Push drops the item when the ring is full and Pull
// reports false when it is empty. This makes it safe to call Push from a
// real-time audio callback, where waiting on the consumer is not an option.
// Both sides copy items through queue-owned slots, so slice-backed payloads
// never alias between producer and consumer when a copy function is supplied.
package spsc
