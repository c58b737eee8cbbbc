package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/san-kum/windsim/internal/automation"
	"github.com/san-kum/windsim/internal/turbine"
	"github.com/san-kum/windsim/internal/wind"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	log := logrus.WithField("cmd", "montecarlo")

	times, err := wind.TimeGrid(cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}
	s, p, err := newSimulator(cfg, log)
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Initial:    cfg.Initial(),
		Wind:       cfg.Wind.Speed,
		RPMSpread:  mcRPMSpread,
		WindSpread: mcWindSpread,
		Trials:     mcTrials,
		Times:      times,
		SpeedLimit: overspeedLimit(cfg, p),
		Seed:       mcSeed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunMonteCarlo(ctx, s, mc, cfg.Sweep.Workers)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("monte carlo: %s | %s | %d trials\n", p.Name, controllerLabel(cfg.Controller), len(results))
	fmt.Printf("stable: %d  unstable: %d\n\n", stable, unstable)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTD")
	for _, name := range []string{"mean_power", "energy", "torque_effort", "pitch_travel", "peak_rotor_speed", "speed_drift", "overspeed"} {
		mean, std, ok := automation.MetricSpread(results, name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\n", name, mean, std)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if unstable == 0 {
		return nil
	}
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tINIT RPM\tWIND\tFINAL RPM")
	for _, r := range results {
		if r.Stable {
			continue
		}
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\n", r.Trial, r.InitRPM, r.Wind, turbine.RadSecToRPM(r.FinalRotorSpeed))
	}
	return w.Flush()
}
