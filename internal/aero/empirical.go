package aero

import "math"

// Coefficients of the Heier power-coefficient approximation.
const (
	heierC1 = 0.5176
	heierC2 = 116
	heierC3 = 0.4
	heierC4 = 5
	heierC5 = 21
	heierC6 = 0.0068
)

// EmpiricalCp is the Heier analytic approximation of the power coefficient
// for a generic three-bladed rotor. Pitch is in degrees. Negative results
// are clipped to zero.
func EmpiricalCp(pitch, tsr float64) float64 {
	if tsr <= 0 {
		return 0
	}
	inv := 1/(tsr+0.08*pitch) - 0.035/(pitch*pitch*pitch+1)
	cp := heierC1*(heierC2*inv-heierC3*pitch-heierC4)*math.Exp(-heierC5*inv) + heierC6*tsr
	return math.Max(cp, 0)
}

// EmpiricalSurface tabulates Cq = Cp/tsr from [EmpiricalCp] on a 0.5 TSR by
// 1 degree grid. It stands in when no rotor performance file is configured.
func EmpiricalSurface() (*Surface, error) {
	var pitch, tsr []float64
	for b := 0.0; b <= 30; b++ {
		pitch = append(pitch, b)
	}
	for l := 1.0; l <= 16; l += 0.5 {
		tsr = append(tsr, l)
	}

	cq := make([][]float64, len(tsr))
	for i, l := range tsr {
		cq[i] = make([]float64, len(pitch))
		for j, b := range pitch {
			cq[i][j] = EmpiricalCp(b, l) / l
		}
	}
	return NewSurface(pitch, tsr, cq)
}
