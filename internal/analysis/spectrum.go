package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrShortSeries = errors.New("analysis: series too short")

// Spectrum is the one-sided amplitude spectrum of a uniformly sampled series.
type Spectrum struct {
	Freq      []float64
	Amplitude []float64
}

// ComputeSpectrum removes the mean and transforms data sampled every dt
// seconds. Any length is accepted.
func ComputeSpectrum(data []float64, dt float64) (*Spectrum, error) {
	n := len(data)
	if n < 4 || dt <= 0 {
		return nil, ErrShortSeries
	}

	x := make([]float64, n)
	copy(x, data)
	floats.AddConst(-stat.Mean(x, nil), x)

	coeffs := fft.FFTReal(x)
	half := n/2 + 1
	s := &Spectrum{
		Freq:      make([]float64, half),
		Amplitude: make([]float64, half),
	}
	for k := 0; k < half; k++ {
		s.Freq[k] = float64(k) / (float64(n) * dt)
		amp := cmplx.Abs(coeffs[k]) / float64(n)
		if k > 0 && k < n-k {
			amp *= 2
		}
		s.Amplitude[k] = amp
	}
	return s, nil
}

// Dominant returns the strongest non-DC component.
func (s *Spectrum) Dominant() (freq, amplitude float64) {
	if len(s.Amplitude) < 2 {
		return 0, 0
	}
	i := floats.MaxIdx(s.Amplitude[1:]) + 1
	return s.Freq[i], s.Amplitude[i]
}
