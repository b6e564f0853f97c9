package eq

// Settings is one committed snapshot of the EQ parameters.
//
// Values are pre-validated by the parameter store: frequencies in
// [20, 20000] Hz, gain in [-24, 24] dB, Q in [0.1, 10], orders in [1, 4].
// The DSP core performs no additional clamping; delivering an out-of-range
// value here is a caller bug.
type Settings struct {
	LowCutFreq  float64 // Hz
	HighCutFreq float64 // Hz

	PeakFreq   float64 // Hz
	PeakGainDB float64
	PeakQ      float64

	// Cut orders count cascaded 2nd-order sections: each unit adds
	// 12 dB/octave of rolloff.
	LowCutOrder  int
	HighCutOrder int

	LowCutBypassed  bool
	PeakBypassed    bool
	HighCutBypassed bool
}

// DefaultSettings returns the flat preset: cuts parked at the band edges,
// peak at 750 Hz with zero gain.
func DefaultSettings() Settings {
	return Settings{
		LowCutFreq:   20,
		HighCutFreq:  20000,
		PeakFreq:     750,
		PeakGainDB:   0,
		PeakQ:        1,
		LowCutOrder:  1,
		HighCutOrder: 1,
	}
}
