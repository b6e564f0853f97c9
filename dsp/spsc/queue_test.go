package spsc

import (
	"sync"
	"testing"
)

func TestPushPullFIFO(t *testing.T) {
	q := New[int](8)

	for i := 0; i < 5; i++ {
		if !q.Push(i) {
			t.Fatalf("push %d rejected on non-full queue", i)
		}
	}

	if got := q.AvailableForReading(); got != 5 {
		t.Fatalf("AvailableForReading = %d, want 5", got)
	}

	for i := 0; i < 5; i++ {
		var v int
		if !q.Pull(&v) {
			t.Fatalf("pull %d failed on non-empty queue", i)
		}
		if v != i {
			t.Fatalf("pull %d: got %d, want %d (FIFO order violated)", i, v, i)
		}
	}
}

func TestPullEmpty(t *testing.T) {
	q := New[float64](4)

	v := 42.0
	if q.Pull(&v) {
		t.Fatal("pull on empty queue reported an item")
	}
	if v != 42.0 {
		t.Fatalf("pull on empty queue modified out: %v", v)
	}
	if got := q.AvailableForReading(); got != 0 {
		t.Fatalf("AvailableForReading after failed pull = %d, want 0", got)
	}
}

func TestPushFullDropsNewest(t *testing.T) {
	const capacity = 4

	q := New[int](capacity)

	for i := 0; i < capacity; i++ {
		if !q.Push(i) {
			t.Fatalf("push %d rejected before capacity reached", i)
		}
	}

	// The overflow item must be dropped without corrupting queued data.
	if q.Push(99) {
		t.Fatal("push on full queue accepted")
	}
	if got := q.AvailableForReading(); got != capacity {
		t.Fatalf("AvailableForReading = %d, want %d", got, capacity)
	}

	var v int
	if !q.Pull(&v) || v != 0 {
		t.Fatalf("oldest item after overflow: got %d, want 0", v)
	}
	for want := 1; want < capacity; want++ {
		if !q.Pull(&v) || v != want {
			t.Fatalf("got %d, want %d", v, want)
		}
	}
	if q.Pull(&v) {
		t.Fatal("queue should be empty, overflow item must not appear")
	}
}

func TestWraparound(t *testing.T) {
	q := New[int](3)

	next := 0
	expect := 0
	for round := 0; round < 100; round++ {
		for q.Push(next) {
			next++
		}

		var v int
		for q.Pull(&v) {
			if v != expect {
				t.Fatalf("round %d: got %d, want %d", round, v, expect)
			}
			expect++
		}
	}
	if expect != next {
		t.Fatalf("consumed %d items, produced %d", expect, next)
	}
}

func TestPrepareResets(t *testing.T) {
	q := New[int](2)
	q.Push(1)
	q.Push(2)

	q.Prepare(5)

	if got := q.AvailableForReading(); got != 0 {
		t.Fatalf("AvailableForReading after Prepare = %d, want 0", got)
	}
	if got := q.Capacity(); got != 5 {
		t.Fatalf("Capacity after Prepare = %d, want 5", got)
	}
}

func TestWithSlotsAndCopy(t *testing.T) {
	const blockLen = 4

	q := New[[]float64](2,
		WithSlots(func() []float64 { return make([]float64, blockLen) }),
		WithCopy(func(dst *[]float64, src []float64) { copy(*dst, src) }),
	)

	src := []float64{1, 2, 3, 4}
	if !q.Push(src) {
		t.Fatal("push rejected")
	}

	// Producer reuse of its buffer must not affect the queued copy.
	src[0] = -1

	out := make([]float64, blockLen)
	if !q.Pull(&out) {
		t.Fatal("pull failed")
	}
	want := []float64{1, 2, 3, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("slot aliased producer buffer: out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

// TestConcurrentTransfer exercises the queue with a real producer and
// consumer goroutine pair: every item must arrive exactly once, in order.
func TestConcurrentTransfer(t *testing.T) {
	const total = 100000

	q := New[int](64)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < total; {
			if q.Push(i) {
				i++
			}
		}
	}()

	var got []int
	go func() {
		defer wg.Done()
		var v int
		for len(got) < total {
			if q.Pull(&v) {
				got = append(got, v)
			}
		}
	}()

	wg.Wait()

	for i, v := range got {
		if v != i {
			t.Fatalf("item %d: got %d (duplicated, dropped, or reordered)", i, v)
		}
	}
}

func BenchmarkPushPull(b *testing.B) {
	q := New[float64](32)

	var v float64
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Push(float64(i))
		q.Pull(&v)
	}
}
