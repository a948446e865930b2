package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform by radix-2
// Cooley-Tukey. The input length must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the one-sided power spectrum of a series,
// truncated down to the nearest power-of-two length and demeaned.
func PowerSpectrum(series []float64) []float64 {
	n := 1
	for n*2 <= len(series) {
		n *= 2
	}
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range series[:n] {
		mean += v
	}
	mean /= float64(n)

	demeaned := make([]float64, n)
	for i, v := range series[:n] {
		demeaned[i] = v - mean
	}

	spectrum := FFT(demeaned)
	power := make([]float64, n/2)
	for i := range power {
		power[i] = cmplx.Abs(spectrum[i]) * cmplx.Abs(spectrum[i]) / float64(n)
	}
	return power
}
