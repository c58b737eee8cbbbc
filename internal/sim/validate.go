package sim

import (
	"fmt"
	"math"
)

// validateInputs checks the arrays before any resource is acquired. It
// reports whether the time grid is uniform; the run uses the first interval
// either way.
func validateInputs(times, wind []float64) (uniform bool, err error) {
	if len(times) < 2 {
		return false, fmt.Errorf("%w: need at least 2 timesteps, got %d", ErrInvalidInput, len(times))
	}
	if len(times) != len(wind) {
		return false, fmt.Errorf("%w: %d times but %d wind speeds", ErrInvalidInput, len(times), len(wind))
	}

	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return false, &SimulationError{Step: i, Time: t, Wrapped: fmt.Errorf("%w: non-finite time", ErrInvalidInput)}
		}
		if i > 0 && t <= times[i-1] {
			return false, &SimulationError{Step: i, Time: t, Wrapped: fmt.Errorf("%w: time not increasing (%g after %g)", ErrInvalidInput, t, times[i-1])}
		}
	}

	for i, ws := range wind {
		if math.IsNaN(ws) || math.IsInf(ws, 0) {
			return false, &SimulationError{Step: i, Time: times[i], Wrapped: fmt.Errorf("%w: non-finite wind speed", ErrInvalidInput)}
		}
		if ws <= 0 {
			return false, &SimulationError{Step: i, Time: times[i], Wrapped: fmt.Errorf("%w: wind speed %g m/s would make tip-speed ratio undefined", ErrInvalidInput, ws)}
		}
	}

	dt := times[1] - times[0]
	uniform = true
	for i := 2; i < len(times); i++ {
		if math.Abs((times[i]-times[i-1])-dt) > 1e-9*math.Max(1, math.Abs(dt)) {
			uniform = false
			break
		}
	}
	return uniform, nil
}
