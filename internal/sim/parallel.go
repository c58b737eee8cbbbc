package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Case is one independent run of a sweep.
type Case struct {
	Name    string
	Times   []float64
	Wind    []float64
	Initial Initial
}

// Sweep runs cases on at most workers goroutines. Every case opens its own
// controller through the simulator's Opener. Results are in case order. The
// first failure stops cases that have not started yet.
func (s *Simulator) Sweep(ctx context.Context, cases []Case, workers int) ([]*State, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]*State, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range cases {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st, err := s.Run(c.Times, c.Wind, c.Initial)
			if err != nil {
				return fmt.Errorf("case %q: %w", c.Name, err)
			}
			results[i] = st
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
