package aero

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Surface is a coefficient table over blade pitch (columns, degrees) and
// tip-speed ratio (rows).
type Surface struct {
	pitch []float64
	tsr   []float64
	cq    []interp.PiecewiseLinear
	cp    []interp.PiecewiseLinear
	ct    []interp.PiecewiseLinear
}

// NewSurface builds a Cq surface. cq[i][j] is the coefficient at tsr[i],
// pitch[j]. Both axes must be strictly increasing with at least two points.
func NewSurface(pitch, tsr []float64, cq [][]float64) (*Surface, error) {
	if err := checkAxis("pitch", pitch); err != nil {
		return nil, err
	}
	if err := checkAxis("tsr", tsr); err != nil {
		return nil, err
	}
	rows, err := fitRows("cq", pitch, tsr, cq)
	if err != nil {
		return nil, err
	}
	return &Surface{
		pitch: append([]float64(nil), pitch...),
		tsr:   append([]float64(nil), tsr...),
		cq:    rows,
	}, nil
}

// WithPowerThrust attaches Cp and Ct tables on the same grid.
func (s *Surface) WithPowerThrust(cp, ct [][]float64) error {
	cpRows, err := fitRows("cp", s.pitch, s.tsr, cp)
	if err != nil {
		return err
	}
	ctRows, err := fitRows("ct", s.pitch, s.tsr, ct)
	if err != nil {
		return err
	}
	s.cp, s.ct = cpRows, ctRows
	return nil
}

func (s *Surface) HasPowerThrust() bool { return s.cp != nil && s.ct != nil }

func (s *Surface) PitchRange() (float64, float64) { return s.pitch[0], s.pitch[len(s.pitch)-1] }

func (s *Surface) TSRRange() (float64, float64) { return s.tsr[0], s.tsr[len(s.tsr)-1] }

func (s *Surface) Cq(pitch, tsr float64) float64 { return s.lookup(s.cq, pitch, tsr) }

func (s *Surface) Cp(pitch, tsr float64) float64 { return s.lookup(s.cp, pitch, tsr) }

func (s *Surface) Ct(pitch, tsr float64) float64 { return s.lookup(s.ct, pitch, tsr) }

// lookup interpolates along pitch inside the two TSR rows that bracket tsr,
// then linearly between them. Out-of-grid points take the nearest edge value.
func (s *Surface) lookup(rows []interp.PiecewiseLinear, pitch, tsr float64) float64 {
	if rows == nil {
		return math.NaN()
	}
	n := len(s.tsr)
	if tsr <= s.tsr[0] {
		return rows[0].Predict(pitch)
	}
	if tsr >= s.tsr[n-1] {
		return rows[n-1].Predict(pitch)
	}

	hi := sort.SearchFloat64s(s.tsr, tsr)
	if s.tsr[hi] == tsr {
		return rows[hi].Predict(pitch)
	}
	lo := hi - 1
	frac := (tsr - s.tsr[lo]) / (s.tsr[hi] - s.tsr[lo])
	v0 := rows[lo].Predict(pitch)
	v1 := rows[hi].Predict(pitch)
	return v0 + frac*(v1-v0)
}

func checkAxis(name string, axis []float64) error {
	if len(axis) < 2 {
		return fmt.Errorf("%w: %s axis needs at least 2 points, got %d", ErrMalformedGrid, name, len(axis))
	}
	if floats.HasNaN(axis) {
		return fmt.Errorf("%w: %s axis contains NaN", ErrMalformedGrid, name)
	}
	for i := 1; i < len(axis); i++ {
		if axis[i] <= axis[i-1] {
			return fmt.Errorf("%w: %s axis not strictly increasing at index %d", ErrMalformedGrid, name, i)
		}
	}
	return nil
}

func fitRows(name string, pitch, tsr []float64, table [][]float64) ([]interp.PiecewiseLinear, error) {
	if len(table) != len(tsr) {
		return nil, fmt.Errorf("%w: %s has %d rows, tsr axis has %d", ErrMalformedGrid, name, len(table), len(tsr))
	}
	rows := make([]interp.PiecewiseLinear, len(table))
	for i, row := range table {
		if len(row) != len(pitch) {
			return nil, fmt.Errorf("%w: %s row %d has %d columns, pitch axis has %d", ErrMalformedGrid, name, i, len(row), len(pitch))
		}
		if err := rows[i].Fit(pitch, row); err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", ErrMalformedGrid, name, i, err)
		}
	}
	return rows, nil
}
