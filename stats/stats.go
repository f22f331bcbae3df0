// Package stats provides the small set of time-domain signal statistics used
// by the noise generator's tests and CLI: level measures and cross-channel
// correlation.
package stats

import "math"

// Mean returns the arithmetic mean, 0 for empty input.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range signal {
		sum += v
	}
	return sum / float64(len(signal))
}

// RMS returns the root-mean-square level, 0 for empty input.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range signal {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(signal)))
}

// Peak returns the maximum absolute value, 0 for empty input.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, v := range signal {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// AmpToDB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func AmpToDB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}

// Correlation returns the Pearson correlation coefficient of a and b at lag
// zero, in [-1, 1]. Inputs of different or zero length, or with zero
// variance, yield 0.
func Correlation(a, b []float64) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0
	}
	ma := Mean(a)
	mb := Mean(b)

	var cov, va, vb float64
	for i := 0; i < n; i++ {
		da := a[i] - ma
		db := b[i] - mb
		cov += da * db
		va += da * da
		vb += db * db
	}
	if va == 0 || vb == 0 {
		return 0
	}
	return cov / math.Sqrt(va*vb)
}

// FromFloat32 widens a float32 sample slice for analysis.
func FromFloat32(src []float32) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}
