package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/windsim/internal/config"
	"github.com/san-kum/windsim/internal/control"
	"github.com/san-kum/windsim/internal/optim"
	"github.com/san-kum/windsim/internal/sim"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// parseGrid turns "name=v1,v2" entries into parallel name and range slices.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, e := range entries {
		name, list, ok := strings.Cut(e, "=")
		if !ok {
			return nil, nil, fmt.Errorf("grid entry %q: want name=v1,v2,...", e)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid entry %q: %w", e, err)
			}
			vals = append(vals, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	if cfg.Controller.Type != "baseline" {
		return fmt.Errorf("tune needs the baseline controller, have %q", cfg.Controller.Type)
	}
	log := logrus.WithField("cmd", "tune")

	names, ranges, err := parseGrid(tuneGrid)
	if err != nil {
		return err
	}
	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	cases, err := cfg.Cases()
	if err != nil {
		return err
	}

	build := func(g control.Gains) (*sim.Simulator, error) {
		c := *cfg
		c.Controller.Baseline = g
		s, _, err := newSimulator(&c, log)
		return s, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.WithFields(logrus.Fields{
		"candidates": gs.Size(),
		"cases":      len(cases),
		"metric":     tuneMetric,
	}).Info("grid search started")
	start := time.Now()

	results, err := gs.Search(ctx, cfg.Controller.Baseline, build, cases, tuneMetric, cfg.Sweep.Workers)
	if err != nil {
		return err
	}
	log.WithField("elapsed", time.Since(start).String()).Info("grid search finished")

	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\t%s\t%s\n", strings.ToUpper(strings.Join(sorted, "\t")), strings.ToUpper(tuneMetric))
	for i, r := range results {
		if i >= tuneTop {
			break
		}
		fmt.Fprintf(w, "%d", i+1)
		for _, n := range sorted {
			fmt.Fprintf(w, "\t%g", r.Params[n])
		}
		if r.Err != nil {
			fmt.Fprintf(w, "\tfailed: %v\n", r.Err)
			continue
		}
		fmt.Fprintf(w, "\t%.6g\n", r.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if tuneOut == "" {
		return nil
	}
	best := *cfg
	best.Controller.Baseline = results[0].Gains
	if err := config.Save(tuneOut, &best); err != nil {
		return err
	}
	fmt.Printf("\nwrote best gains to %s\n", tuneOut)
	return nil
}
