package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of bins 0..n/2 of the mean-removed
// series. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period in samples of the strongest non-DC bin
// and its magnitude. Series shorter than four samples have no period.
func DominantPeriod(data []float64) (float64, float64) {
	if len(data) < 4 {
		return 0, 0
	}
	ps := PowerSpectrum(data)
	best := 0
	for k := 1; k < len(ps); k++ {
		if best == 0 || ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] == 0 {
		return 0, 0
	}
	return float64(len(data)) / float64(best), ps[best]
}
