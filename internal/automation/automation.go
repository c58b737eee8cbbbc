// Package automation runs Monte Carlo batches of rotor simulations with
// randomly perturbed initial rotor speed and wind speed.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/windsim/internal/sim"
	"gonum.org/v1/gonum/stat"
)

var ErrBadMonteCarlo = errors.New("automation: invalid monte carlo config")

// MonteCarloConfig perturbs Initial.RotorRPM by up to RPMSpread and the
// constant wind speed by up to WindSpread, both uniformly.
type MonteCarloConfig struct {
	Initial    sim.Initial
	Wind       float64
	RPMSpread  float64
	WindSpread float64
	Trials     int
	Times      []float64
	// SpeedLimit in rad/s marks a trial unstable when its final rotor speed
	// exceeds it. Zero only checks for non-finite values.
	SpeedLimit float64
	Seed       int64
}

func (c *MonteCarloConfig) Validate() error {
	switch {
	case c.Trials < 1:
		return fmt.Errorf("%w: need at least one trial", ErrBadMonteCarlo)
	case len(c.Times) < 2:
		return fmt.Errorf("%w: need at least two time points", ErrBadMonteCarlo)
	case c.RPMSpread < 0 || c.WindSpread < 0:
		return fmt.Errorf("%w: spreads must not be negative", ErrBadMonteCarlo)
	case c.Wind-c.WindSpread <= 0:
		return fmt.Errorf("%w: wind %g +/- %g can reach zero", ErrBadMonteCarlo, c.Wind, c.WindSpread)
	case c.Initial.RotorRPM-c.RPMSpread < 0:
		return fmt.Errorf("%w: rotor speed %g +/- %g rpm can go negative", ErrBadMonteCarlo, c.Initial.RotorRPM, c.RPMSpread)
	}
	return nil
}

type MonteCarloResult struct {
	Trial           int
	InitRPM         float64
	Wind            float64
	FinalRotorSpeed float64
	Stable          bool
	Metrics         map[string]float64
}

// Cases draws the perturbed trials. The same seed gives the same cases.
func (c *MonteCarloConfig) Cases() ([]sim.Case, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(c.Seed))
	if c.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cases := make([]sim.Case, c.Trials)
	for trial := range cases {
		x0 := c.Initial
		x0.RotorRPM += (rng.Float64() - 0.5) * 2 * c.RPMSpread
		ws := c.Wind + (rng.Float64()-0.5)*2*c.WindSpread

		wind := make([]float64, len(c.Times))
		for i := range wind {
			wind[i] = ws
		}
		cases[trial] = sim.Case{
			Name:    fmt.Sprintf("trial_%d", trial),
			Times:   c.Times,
			Wind:    wind,
			Initial: x0,
		}
	}
	return cases, nil
}

// RunMonteCarlo simulates every trial on s with up to workers in parallel.
func RunMonteCarlo(ctx context.Context, s *sim.Simulator, cfg *MonteCarloConfig, workers int) ([]MonteCarloResult, error) {
	cases, err := cfg.Cases()
	if err != nil {
		return nil, err
	}
	runs, err := s.Sweep(ctx, cases, workers)
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, st := range runs {
		final := st.RotorSpeed[st.Len()-1]
		stable := !math.IsNaN(final) && !math.IsInf(final, 0)
		if cfg.SpeedLimit > 0 && final > cfg.SpeedLimit {
			stable = false
		}
		results[i] = MonteCarloResult{
			Trial:           i,
			InitRPM:         cases[i].Initial.RotorRPM,
			Wind:            cases[i].Wind[0],
			FinalRotorSpeed: final,
			Stable:          stable,
			Metrics:         st.Metrics,
		}
	}
	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

// MetricSpread returns the mean and standard deviation of a metric across
// trials. Trials without the metric are skipped.
func MetricSpread(results []MonteCarloResult, name string) (mean, std float64, ok bool) {
	var vals []float64
	for _, r := range results {
		if v, has := r.Metrics[name]; has {
			vals = append(vals, v)
		}
	}
	switch len(vals) {
	case 0:
		return 0, 0, false
	case 1:
		return vals[0], 0, true
	}
	mean, std = stat.MeanStdDev(vals, nil)
	return mean, std, true
}
