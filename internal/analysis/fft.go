package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Detrend subtracts the straight line joining the end points, which removes the
// jump a fixed-boundary profile would otherwise show at the FFT wrap-around.
func Detrend(c []float64) []float64 {
	n := len(c)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	a, b := c[0], c[n-1]
	for i, v := range c {
		out[i] = v - (a + (b-a)*float64(i)/float64(n-1))
	}
	return out
}

// PowerSpectrum returns |X_k|^2 for k = 0..n/2 of the detrended field.
func PowerSpectrum(c []float64) []float64 {
	if len(c) == 0 {
		return nil
	}
	freq := fft.FFTReal(Detrend(c))
	ps := make([]float64, len(freq)/2+1)
	for i := range ps {
		a := cmplx.Abs(freq[i])
		ps[i] = a * a
	}
	return ps
}

// HighFrequencyFraction returns the share of non-DC power in modes above
// cutoff*Nyquist. cutoff is clamped to [0, 1]. A flat field returns 0.
func HighFrequencyFraction(c []float64, cutoff float64) float64 {
	ps := PowerSpectrum(c)
	if len(ps) < 2 {
		return 0
	}
	cutoff = min(max(cutoff, 0), 1)
	k0 := int(cutoff * float64(len(ps)-1))

	total, high := 0.0, 0.0
	for k := 1; k < len(ps); k++ {
		total += ps[k]
		if k > k0 {
			high += ps[k]
		}
	}
	if total == 0 {
		return 0
	}
	return high / total
}
