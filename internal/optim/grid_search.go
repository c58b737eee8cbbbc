// Package optim tunes baseline controller gains by exhaustive search.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/windsim/internal/control"
	"github.com/san-kum/windsim/internal/sim"
)

var ErrNoCandidate = errors.New("optim: no candidate completed")

// Build returns a simulator driving the baseline controller with g.
type Build func(g control.Gains) (*sim.Simulator, error)

// Result is one evaluated gain set. Score is the metric summed over all
// cases; Err is set when any case failed.
type Result struct {
	Params map[string]float64
	Gains  control.Gains
	Score  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch searches the cartesian product of ranges. Names are
// [control.Gains] parameters as accepted by [SetGain].
func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if err := SetGain(&control.Gains{}, name, 0); err != nil {
			return nil, err
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of candidates.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs every case for every candidate built on base and returns all
// results, best (lowest score) first. Failed candidates sort last.
func (g *GridSearch) Search(
	ctx context.Context,
	base control.Gains,
	build Build,
	cases []sim.Case,
	metricName string,
	workers int,
) ([]Result, error) {
	var results []Result
	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, build, cases, metricName, workers, &results)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Score < results[j].Score
	})
	if len(results) == 0 || results[0].Err != nil {
		return results, ErrNoCandidate
	}
	return results, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base control.Gains,
	build Build,
	cases []sim.Case,
	metricName string,
	workers int,
	results *[]Result,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		res := Result{Params: make(map[string]float64, len(current)), Gains: base}
		for k, v := range current {
			res.Params[k] = v
			// names were checked in NewGridSearch
			_ = SetGain(&res.Gains, k, v)
		}
		res.Score, res.Err = evaluate(ctx, res.Gains, build, cases, metricName, workers)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		*results = append(*results, res)
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, build, cases, metricName, workers, results); err != nil {
			return err
		}
	}
	return nil
}

func evaluate(ctx context.Context, g control.Gains, build Build, cases []sim.Case, metricName string, workers int) (float64, error) {
	if err := g.Validate(); err != nil {
		return math.Inf(1), err
	}
	s, err := build(g)
	if err != nil {
		return math.Inf(1), err
	}
	runs, err := s.Sweep(ctx, cases, workers)
	if err != nil {
		return math.Inf(1), err
	}

	score := 0.0
	for _, st := range runs {
		v, ok := st.Metrics[metricName]
		if !ok {
			return math.Inf(1), fmt.Errorf("optim: run has no metric %q", metricName)
		}
		score += v
	}
	return score, nil
}

// SetGain sets the named gain on g.
func SetGain(g *control.Gains, name string, v float64) error {
	switch name {
	case "pitch_kp":
		g.PitchKp = v
	case "pitch_ki":
		g.PitchKi = v
	case "optimal_gain":
		g.OptimalGain = v
	case "max_torque_rate":
		g.MaxTorqueRate = v
	case "max_pitch_rate":
		g.MaxPitchRate = v
	case "rated_gen_speed":
		g.RatedGenSpeed = v
	case "rated_torque":
		g.RatedTorque = v
	default:
		return fmt.Errorf("optim: unknown gain %q", name)
	}
	return nil
}
