package analyzer

import "testing"

func TestCollectorRoundTrip(t *testing.T) {
	c := NewCollector(4, 8)

	in := []float64{1, 2, 3, 4, 5}
	if !c.PushBlock(in) {
		t.Fatal("push failed on empty collector")
	}

	out, ok := c.PullBlock()
	if !ok {
		t.Fatal("pull failed after push")
	}

	if len(out) != len(in) {
		t.Fatalf("got %d samples, want %d", len(out), len(in))
	}

	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestCollectorCopiesOnPush(t *testing.T) {
	c := NewCollector(4, 4)

	in := []float64{1, 2, 3}
	c.PushBlock(in)
	in[0] = 99

	out, _ := c.PullBlock()
	if out[0] != 1 {
		t.Fatalf("pulled block aliases pushed slice: got %v", out[0])
	}
}

func TestCollectorDropsWhenFull(t *testing.T) {
	c := NewCollector(2, 4)

	block := []float64{1}
	if !c.PushBlock(block) || !c.PushBlock(block) {
		t.Fatal("pushes within capacity failed")
	}

	if c.PushBlock(block) {
		t.Fatal("push succeeded on full collector")
	}

	if got := c.AvailableForReading(); got != 2 {
		t.Fatalf("available = %d, want 2", got)
	}
}

func TestCollectorRejectsOversizedBlock(t *testing.T) {
	c := NewCollector(4, 4)

	if c.PushBlock(make([]float64, 5)) {
		t.Fatal("oversized block accepted")
	}

	if c.PushBlock(nil) {
		t.Fatal("empty block accepted")
	}
}

func TestSampleWindowAppend(t *testing.T) {
	w := NewSampleWindow(4)

	w.Append([]float64{1, 2})
	w.Append([]float64{3})

	want := []float64{0, 1, 2, 3}
	got := w.Samples()

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("window[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSampleWindowLongBlock(t *testing.T) {
	w := NewSampleWindow(3)

	w.Append([]float64{1, 2, 3, 4, 5})

	want := []float64{3, 4, 5}
	got := w.Samples()

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("window[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSampleWindowReset(t *testing.T) {
	w := NewSampleWindow(2)
	w.Append([]float64{1, 2})
	w.Reset()

	for i, v := range w.Samples() {
		if v != 0 {
			t.Fatalf("window[%d] = %v after reset", i, v)
		}
	}
}
