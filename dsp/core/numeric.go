// Package core provides small numeric helpers shared across the DSP and
// display-mapping packages: clamping, dB conversions, and the linear and
// logarithmic axis mappings used by the frequency display.
package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearToDBWithFloor converts linear amplitude to dB, clamping the result
// to floorDB. Zero and negative amplitudes map to floorDB.
func LinearToDBWithFloor(linear, floorDB float64) float64 {
	if linear <= 0 {
		return floorDB
	}

	return math.Max(floorDB, 20*math.Log10(linear))
}

// MapLinear remaps value from [srcMin, srcMax] to [dstMin, dstMax] without
// clamping.
func MapLinear(value, srcMin, srcMax, dstMin, dstMax float64) float64 {
	if srcMax == srcMin {
		return dstMin
	}

	return dstMin + (value-srcMin)*(dstMax-dstMin)/(srcMax-srcMin)
}

// MapToLog10 maps a normalized position in [0, 1] onto a log-spaced value
// in [min, max]. Position 0 yields min, position 1 yields max.
func MapToLog10(position, min, max float64) float64 {
	return min * math.Pow(max/min, position)
}

// MapFromLog10 maps a value in [min, max] onto its normalized log-spaced
// position. The inverse of MapToLog10; values below min map negative.
func MapFromLog10(value, min, max float64) float64 {
	if value <= 0 || min <= 0 || max <= min {
		return math.Inf(-1)
	}

	return math.Log10(value/min) / math.Log10(max/min)
}
