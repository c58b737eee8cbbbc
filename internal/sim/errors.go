package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates malformed time or wind arrays.
	ErrInvalidInput = errors.New("sim: invalid input")

	ErrNoController = errors.New("sim: no controller configured")
)

// SimulationError wraps an error with the timestep it occurred at.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
