package eq

import (
	"github.com/cwbudde/algo-eq/dsp/core"
)

// Display axis bounds shared by the response curve and the spectrum display.
const (
	MinDisplayFreq = 20.0    // Hz
	MaxDisplayFreq = 20000.0 // Hz
	MinDisplayDB   = -24.0
	MaxDisplayDB   = 24.0
)

// ResponseDB samples the chain's magnitude response in dB across len(dst)
// log-spaced frequencies between MinDisplayFreq and MaxDisplayFreq, one per
// display column. Evaluation reads coefficients only; filter state is
// untouched, so this is safe to run on a chain that never processes audio.
func (c *Chain) ResponseDB(dst []float64) {
	w := len(dst)
	if w == 0 {
		return
	}

	for i := range dst {
		freq := core.MapToLog10(float64(i)/float64(w), MinDisplayFreq, MaxDisplayFreq)
		dst[i] = core.LinearToDB(c.Magnitude(freq))
	}
}

// MagnitudeDB returns the cascade magnitude response in dB at freq.
func (c *Chain) MagnitudeDB(freq float64) float64 {
	return core.LinearToDB(c.Magnitude(freq))
}
