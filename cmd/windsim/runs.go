package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/windsim/internal/analysis"
	"github.com/san-kum/windsim/internal/export"
	"github.com/san-kum/windsim/internal/sim"
	"github.com/san-kum/windsim/internal/storage"
	"github.com/san-kum/windsim/internal/viz"
	"github.com/spf13/cobra"
)

// openRun resolves an id prefix and loads both metadata and series.
func openRun(prefix string) (*storage.RunMetadata, *sim.State, error) {
	st := storage.New(dataDir)
	runID, err := st.Resolve(prefix)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	state, err := st.LoadState(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, state, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTURBINE\tTIME\tSTEPS\tDT\tCTRL\tWIND\tPOWER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%s\t%s\t%.1f kW\n",
			run.ID,
			run.Turbine,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Controller,
			run.Wind,
			run.Metrics["mean_power"]/1000,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, state, err := openRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("turbine: %s\n", meta.Turbine)
	fmt.Printf("samples: %d\n\n", state.Len())

	graph, err := viz.PlotSeries(state, []string{"wind_speed", "rotor_speed", "gen_torque", "blade_pitch", "gen_power"}, 70, 10)
	if err != nil {
		return err
	}
	fmt.Println(graph)

	styles := viz.NewStyles(viz.GetTheme(theme))
	fmt.Println(viz.Summary("metrics", meta.Metrics, styles))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, state, err := openRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("turbine: %s\n\n", meta.Turbine)

	spec, err := analysis.ComputeSpectrum(state.RotorSpeed, state.Dt)
	if err != nil {
		return err
	}
	freq, amp := spec.Dominant()
	fmt.Printf("rotor speed dominant frequency: %.4f hz (amplitude %.4g rad/s)\n", freq, amp)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	if n := state.Len(); n > 0 {
		tol := 0.01 * max(state.RotorSpeed[n-1], 1e-9)
		fmt.Printf("rotor speed settles (1%%) at t=%.2f s\n", analysis.SettlingTime(state.Time, state.RotorSpeed, tol))
	}

	portrait, err := analysis.NewPortrait(state, "rotor_speed", "blade_pitch")
	if err != nil {
		return err
	}
	fmt.Printf("\n%s vs %s\n", portrait.YName, portrait.XName)
	fmt.Println(portrait.ToASCII(60, 16))
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	meta, state, err := openRun(args[0])
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s | %s | %s", meta.Turbine, meta.Controller, meta.Wind)
	_, err = tea.NewProgram(viz.NewReplay(state, title), tea.WithAltScreen()).Run()
	return err
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, state, err := openRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, state)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, state, err := openRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, state)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, state, err := openRun(args[0])
	if err != nil {
		return err
	}
	t := viz.GetTheme(theme)

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.SeriesSVG(f, state, []string{"wind_speed", "rotor_speed", "gen_torque", "blade_pitch", "gen_power"}, 900, 900, t); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	portrait, err := analysis.NewPortrait(state, "rotor_speed", "blade_pitch")
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(args[1], filepath.Ext(args[1])) + "_portrait.svg"
	pf, err := os.Create(name)
	if err != nil {
		return err
	}
	defer pf.Close()
	if err := export.PortraitSVG(pf, portrait, 500, 500, t); err != nil {
		return err
	}
	fmt.Printf("wrote %s and %s\n", args[1], name)
	return pf.Close()
}
