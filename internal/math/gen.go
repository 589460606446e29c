package math

import "math"

// Series generates n evenly spaced values starting at start.
func Series(start, step float64, n int) []float64 {
	xx := make([]float64, n)
	for i := 0; i < n; i++ {
		xx[i] = start + step*float64(i)
	}
	return xx
}

// Wave generates n samples of a sine of the given amplitude and frequency.
// It gives deterministic perturbations for fitting data.
func Wave(amplitude float64, n int, frequency float64) []float64 {
	xx := make([]float64, n)
	for i := 0; i < n; i++ {
		xx[i] = amplitude * math.Sin(float64(i)*frequency)
	}
	return xx
}
