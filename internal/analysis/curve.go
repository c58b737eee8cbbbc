package analysis

import (
	"math"
	"sort"

	"github.com/san-kum/windsim/internal/sim"
	"gonum.org/v1/gonum/stat"
)

// CurvePoint is the settled operating point of one constant-wind run.
type CurvePoint struct {
	WindSpeed  float64
	RotorSpeed float64
	GenTorque  float64
	BladePitch float64
	GenPower   float64
	// Spread is the standard deviation of rotor speed over the window;
	// a large value means the run had not settled.
	Spread float64
}

// PowerCurve averages the final window seconds of each run of a wind speed
// sweep and returns the points ordered by wind speed.
func PowerCurve(runs []*sim.State, window float64) []CurvePoint {
	points := make([]CurvePoint, 0, len(runs))
	for _, st := range runs {
		if st == nil || st.Len() == 0 {
			continue
		}
		from := tailStart(st.Time, window)
		rotor := st.RotorSpeed[from:]
		mean, std := stat.MeanStdDev(rotor, nil)
		if len(rotor) < 2 {
			std = 0
		}
		points = append(points, CurvePoint{
			WindSpeed:  stat.Mean(st.WindSpeed[from:], nil),
			RotorSpeed: mean,
			GenTorque:  stat.Mean(st.GenTorque[from:], nil),
			BladePitch: stat.Mean(st.BladePitch[from:], nil),
			GenPower:   stat.Mean(st.GenPower[from:], nil),
			Spread:     std,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].WindSpeed < points[j].WindSpeed })
	return points
}

// SettlingTime is the first time after which series stays within tol of its
// final value, or the last time if it never settles.
func SettlingTime(times, series []float64, tol float64) float64 {
	n := len(series)
	if n == 0 {
		return 0
	}
	final := series[n-1]
	i := n - 1
	for i > 0 && math.Abs(series[i-1]-final) <= tol {
		i--
	}
	return times[i]
}

func tailStart(times []float64, window float64) int {
	end := times[len(times)-1]
	i := sort.SearchFloat64s(times, end-window)
	if i >= len(times) {
		i = len(times) - 1
	}
	return i
}
