package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		value, min, max, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{5, 10, 0, 5}, // swapped bounds
	}
	for _, tc := range cases {
		if got := Clamp(tc.value, tc.min, tc.max); got != tc.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tc.value, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestDBConversionsRoundTrip(t *testing.T) {
	for _, db := range []float64{-48, -24, -6, 0, 6, 24} {
		lin := DBToLinear(db)
		if got := LinearToDB(lin); !NearlyEqual(got, db, 1e-10) {
			t.Errorf("round trip %v dB: got %v", db, got)
		}
	}
}

func TestLinearToDBWithFloor(t *testing.T) {
	if got := LinearToDBWithFloor(0, -48); got != -48 {
		t.Errorf("zero gain: %v, want -48", got)
	}
	if got := LinearToDBWithFloor(1e-9, -48); got != -48 {
		t.Errorf("tiny gain: %v, want -48 (floor)", got)
	}
	if got := LinearToDBWithFloor(1, -48); got != 0 {
		t.Errorf("unity gain: %v, want 0", got)
	}
	if got := LinearToDBWithFloor(2, -48); !NearlyEqual(got, 20*math.Log10(2), 1e-12) {
		t.Errorf("gain 2: %v", got)
	}
}

func TestMapLinear(t *testing.T) {
	if got := MapLinear(0.5, 0, 1, -24, 24); got != 0 {
		t.Errorf("midpoint: %v, want 0", got)
	}
	if got := MapLinear(-24, -24, 24, 100, 0); got != 100 {
		t.Errorf("bottom of range: %v, want 100", got)
	}
	if got := MapLinear(3, 2, 2, 5, 9); got != 5 {
		t.Errorf("degenerate source range: %v, want 5", got)
	}
}

func TestLogAxisMapping(t *testing.T) {
	// The display axis spans 20 Hz .. 20 kHz over three decades.
	if got := MapToLog10(0, 20, 20000); !NearlyEqual(got, 20, 1e-9) {
		t.Errorf("position 0: %v, want 20", got)
	}
	if got := MapToLog10(1, 20, 20000); !NearlyEqual(got, 20000, 1e-9) {
		t.Errorf("position 1: %v, want 20000", got)
	}
	if got := MapToLog10(1.0/3, 20, 20000); !NearlyEqual(got, 200, 1e-9) {
		t.Errorf("one decade in: %v, want 200", got)
	}

	for _, f := range []float64{20, 100, 1000, 20000} {
		pos := MapFromLog10(f, 20, 20000)
		if got := MapToLog10(pos, 20, 20000); !NearlyEqual(got, f, 1e-9) {
			t.Errorf("round trip %v Hz: got %v", f, got)
		}
	}

	if got := MapFromLog10(10, 20, 20000); got >= 0 {
		t.Errorf("below-axis frequency should map negative, got %v", got)
	}
	if got := MapFromLog10(0, 20, 20000); !math.IsInf(got, -1) {
		t.Errorf("zero frequency: %v, want -Inf", got)
	}
}
