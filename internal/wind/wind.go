// Package wind builds the time and hub-height wind speed arrays that drive a
// simulation run.
package wind

import (
	"errors"
	"fmt"
	"math"
)

var ErrBadProfile = errors.New("wind: invalid profile")

type Profile interface {
	At(t float64) float64
}

type Constant struct {
	Speed float64
}

func (c Constant) At(t float64) float64 { return c.Speed }

// Step holds Before until time At (exclusive) and After from then on.
type Step struct {
	Before float64
	After  float64
	Time   float64
}

func (s Step) At(t float64) float64 {
	if t < s.Time {
		return s.Before
	}
	return s.After
}

// Ramp changes linearly from From to To between Start and End.
type Ramp struct {
	From  float64
	To    float64
	Start float64
	End   float64
}

func (r Ramp) At(t float64) float64 {
	switch {
	case t <= r.Start:
		return r.From
	case t >= r.End:
		return r.To
	}
	return r.From + (r.To-r.From)*(t-r.Start)/(r.End-r.Start)
}

// TimeGrid returns 0, dt, 2dt, ... up to and including duration.
func TimeGrid(dt, duration float64) ([]float64, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", ErrBadProfile, dt)
	}
	if duration < dt {
		return nil, fmt.Errorf("%w: duration %g shorter than one step %g", ErrBadProfile, duration, dt)
	}
	n := int(math.Floor(duration/dt+1e-9)) + 1
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * dt
	}
	return times, nil
}

func Sample(p Profile, times []float64) []float64 {
	ws := make([]float64, len(times))
	for i, t := range times {
		ws[i] = p.At(t)
	}
	return ws
}
