package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/san-kum/windsim/internal/analysis"
	"github.com/san-kum/windsim/internal/config"
	"github.com/san-kum/windsim/internal/metrics"
	"github.com/san-kum/windsim/internal/sim"
	"github.com/san-kum/windsim/internal/storage"
	"github.com/san-kum/windsim/internal/turbine"
	"github.com/san-kum/windsim/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	theme    string
	// Scenario selection
	configFile string
	preset     string
	// Overrides, applied only when set on the command line
	dt         float64
	duration   float64
	windSpeed  float64
	controller string
	library    string
	perfFile   string
	// Sweep
	workers int
	window  float64
	// Tuning
	tuneGrid   []string
	tuneMetric string
	tuneTop    int
	tuneOut    string
	// Monte Carlo
	mcTrials     int
	mcRPMSpread  float64
	mcWindSpread float64
	mcSeed       int64
	// Reporting
	overspeedRPM float64
	noSave       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "windsim",
		Short:         "1DOF wind turbine rotor simulator with DISCON controllers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(lvl)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".windsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "offshore", "terminal theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate one scenario",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	scenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "simulate a constant wind speed sweep and print the power curve",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	scenarioFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel runs")
	sweepCmd.Flags().Float64Var(&window, "window", 20, "averaging window at the end of each run (s)")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum, settling and phase portrait of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write the run series as csv to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run metadata and series as json to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "write run series and pitch portrait as svg",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search baseline gains over the sweep wind speeds",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	scenarioFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel runs per candidate")
	tuneCmd.Flags().StringArrayVar(&tuneGrid, "grid", []string{"pitch_kp=0.01,0.0188,0.03", "pitch_ki=0.004,0.008,0.016"}, "gain=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "speed_drift", "metric to minimise, summed over cases")
	tuneCmd.Flags().IntVar(&tuneTop, "top", 5, "candidates to print")
	tuneCmd.Flags().StringVar(&tuneOut, "out", "", "write the scenario with the best gains to this file")

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run trials with perturbed initial rotor speed and wind speed",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	scenarioFlags(mcCmd)
	mcCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel runs")
	mcCmd.Flags().IntVar(&mcTrials, "trials", 50, "number of trials")
	mcCmd.Flags().Float64Var(&mcRPMSpread, "rpm-spread", 1, "initial rotor speed perturbation (rpm)")
	mcCmd.Flags().Float64Var(&mcWindSpread, "wind-spread", 1, "wind speed perturbation (m/s)")
	mcCmd.Flags().Int64Var(&mcSeed, "seed", 0, "random seed (0 picks one)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario and turbine presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a scenario config file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	for _, c := range []*cobra.Command{runCmd, sweepCmd, tuneCmd, mcCmd} {
		c.Flags().Float64Var(&overspeedRPM, "overspeed", 0, "rotor overspeed limit in rpm (default 110% of rated)")
	}

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, plotCmd, analyzeCmd, replayCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, tuneCmd, mcCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	cmd.Flags().Float64Var(&windSpeed, "wind", config.DefaultWind, "constant wind speed (m/s)")
	cmd.Flags().StringVar(&controller, "controller", "baseline", "controller: baseline, hold or native")
	cmd.Flags().StringVar(&library, "library", "", "DISCON shared library (native controller)")
	cmd.Flags().StringVar(&perfFile, "perf", "", "rotor performance file (Cp/Ct/Cq)")
}

// loadScenario layers defaults, preset, config file and changed flags.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (see windsim presets)", preset)
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("wind") {
		cfg.Wind = config.WindConfig{Profile: "constant", Speed: windSpeed}
	}
	if flags.Changed("controller") {
		cfg.Controller.Type = controller
	}
	if flags.Changed("library") {
		cfg.Controller.Library = library
		if !flags.Changed("controller") {
			cfg.Controller.Type = "native"
		}
	}
	if flags.Changed("perf") {
		cfg.Aero.PerformanceFile = perfFile
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Sweep.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSimulator wires the configured scenario with the standard metrics.
func newSimulator(cfg *config.Config, log *logrus.Entry) (*sim.Simulator, turbine.Params, error) {
	p, err := cfg.TurbineParams()
	if err != nil {
		return nil, p, err
	}
	return cfg.Simulator(log, sim.WithMetrics(metrics.Standard(overspeedLimit(cfg, p))))
}

// overspeedLimit returns the rotor speed limit in rad/s.
func overspeedLimit(cfg *config.Config, p turbine.Params) float64 {
	if overspeedRPM > 0 {
		return turbine.RPMToRadSec(overspeedRPM)
	}
	rated := cfg.Controller.Baseline.RatedGenSpeed / p.GearboxRatio
	if rated <= 0 {
		return 0
	}
	return 1.1 * rated
}

func windLabel(w config.WindConfig) string {
	switch w.Profile {
	case "step":
		return fmt.Sprintf("step %g->%g m/s at %gs", w.Speed, w.After, w.Start)
	case "ramp":
		return fmt.Sprintf("ramp %g->%g m/s over %g-%gs", w.Speed, w.After, w.Start, w.End)
	case "file":
		return "file " + w.File
	}
	return fmt.Sprintf("constant %g m/s", w.Speed)
}

func controllerLabel(c config.ControllerConfig) string {
	if c.Type == "native" {
		return "native " + c.Library
	}
	return c.Type
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	log := logrus.WithField("cmd", "run")

	times, speeds, err := cfg.Series()
	if err != nil {
		return err
	}
	s, p, err := newSimulator(cfg, log)
	if err != nil {
		return err
	}

	start := time.Now()
	st, err := s.Run(times, speeds, cfg.Initial())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	styles := viz.NewStyles(viz.GetTheme(theme))
	fmt.Println(viz.Summary(fmt.Sprintf("%s | %s | %s", p.Name, controllerLabel(cfg.Controller), windLabel(cfg.Wind)),
		st.Metrics, styles))
	fmt.Printf("completed %d steps in %v (aero: %s)\n", st.Len(), elapsed, st.Aero)

	if noSave {
		return nil
	}
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunInfo{
		Params:     p,
		Controller: controllerLabel(cfg.Controller),
		Wind:       windLabel(cfg.Wind),
	}, st)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	log := logrus.WithField("cmd", "sweep")

	cases, err := cfg.Cases()
	if err != nil {
		return err
	}
	s, p, err := newSimulator(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	runs, err := s.Sweep(ctx, cases, cfg.Sweep.Workers)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"cases":   len(cases),
		"elapsed": time.Since(start).String(),
	}).Info("sweep finished")

	fmt.Printf("power curve: %s | %s\n\n", p.Name, controllerLabel(cfg.Controller))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WIND\tROTOR\tTORQUE\tPITCH\tPOWER\tSPREAD")
	for _, pt := range analysis.PowerCurve(runs, window) {
		fmt.Fprintf(w, "%.2f m/s\t%.2f rpm\t%.0f Nm\t%.2f deg\t%.1f kW\t%.4f\n",
			pt.WindSpeed,
			turbine.RadSecToRPM(pt.RotorSpeed),
			pt.GenTorque,
			pt.BladePitch,
			pt.GenPower/1000,
			pt.Spread,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if graph, err := viz.PlotSweep(runs, "rotor_speed", 70, 12); err == nil {
		fmt.Println()
		fmt.Println(graph)
	}

	if noSave {
		return nil
	}
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	for i, st := range runs {
		runID, err := store.Save(storage.RunInfo{
			Params:     p,
			Controller: controllerLabel(cfg.Controller),
			Wind:       fmt.Sprintf("constant %g m/s", cfg.Sweep.WindSpeeds[i]),
			Case:       cases[i].Name,
		}, st)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", cases[i].Name, runID)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tTURBINE\tWIND\tDT\tDURATION")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3fs\t%.0fs\n", name, cfg.Turbine, windLabel(cfg.Wind), cfg.Dt, cfg.Duration)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TURBINE\tRADIUS\tGEARBOX\tINERTIA")
	for _, name := range turbine.ListPresets() {
		p, _ := turbine.Preset(name)
		fmt.Fprintf(w, "%s\t%.1f m\t%.1f\t%.4g kg m^2\n", p.Name, p.RotorRadius, p.GearboxRatio, p.RotorInertia)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset %q", preset)
		}
	}
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
