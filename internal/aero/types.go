package aero

import (
	"errors"
	"fmt"
)

var (
	// ErrOutsideEnvelope is returned by evaluators for operating points they
	// cannot solve.
	ErrOutsideEnvelope = errors.New("aero: operating point outside evaluator envelope")

	// ErrNoEvaluator marks the placeholder evaluator used when none is configured.
	ErrNoEvaluator = errors.New("aero: no performance evaluator configured")

	ErrZeroWindSpeed = errors.New("aero: zero wind speed in tip-speed ratio")
	ErrNoSource      = errors.New("aero: neither evaluator nor surface available")
	ErrMalformedGrid = errors.New("aero: malformed coefficient grid")
)

// Query is an operating point. RotorSpeed is in rad/s, Pitch in degrees.
type Query struct {
	WindSpeed  float64
	RotorSpeed float64
	Pitch      float64
}

type Coefficients struct {
	Cq float64
	Cp float64
	Ct float64
	// HasPowerThrust is false when the source only knows Cq.
	HasPowerThrust bool
}

// Performance is the full answer of an evaluator at one operating point.
type Performance struct {
	Power  float64
	Thrust float64
	Torque float64
	Moment float64
	Cp     float64
	Ct     float64
	Cq     float64
	Cm     float64
}

type Evaluator interface {
	Evaluate(windSpeed, rotorRPM, pitch float64) (Performance, error)
}

type Source interface {
	Coefficients(q Query) (Coefficients, error)
}

// EvaluationError is an evaluator rejecting an operating point.
type EvaluationError struct {
	Query   Query
	Wrapped error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("aero: evaluation failed at ws=%.3f m/s, omega=%.4f rad/s, pitch=%.3f deg: %v",
		e.Query.WindSpeed, e.Query.RotorSpeed, e.Query.Pitch, e.Wrapped)
}

func (e *EvaluationError) Unwrap() error {
	return e.Wrapped
}

// Unavailable always fails. It stands in when no evaluator is configured so
// that the fallback path is taken and reported like any other failure.
type Unavailable struct{}

func (Unavailable) Evaluate(windSpeed, rotorRPM, pitch float64) (Performance, error) {
	return Performance{}, ErrNoEvaluator
}
