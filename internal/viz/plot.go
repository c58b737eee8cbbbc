package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/windsim/internal/sim"
)

var seriesUnits = map[string]string{
	"time":        "s",
	"wind_speed":  "m/s",
	"rotor_speed": "rad/s",
	"gen_speed":   "rad/s",
	"aero_torque": "N·m",
	"gen_torque":  "N·m",
	"blade_pitch": "deg",
	"gen_power":   "W",
}

// Series returns a named column of st.
func Series(st *sim.State, name string) ([]float64, error) {
	names, cols := st.Columns()
	for i, n := range names {
		if n == name {
			return cols[i], nil
		}
	}
	return nil, fmt.Errorf("viz: unknown series %q (have %s)", name, strings.Join(names, ", "))
}

// PlotSeries renders one chart per named series.
func PlotSeries(st *sim.State, names []string, width, height int) (string, error) {
	var b strings.Builder
	for i, name := range names {
		data, err := Series(st, name)
		if err != nil {
			return "", err
		}
		if len(data) == 0 {
			continue
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		caption := fmt.Sprintf("%s [%s] over %.4gs", name, seriesUnits[name], st.Time[len(st.Time)-1]-st.Time[0])
		b.WriteString(asciigraph.Plot(data,
			asciigraph.Width(width),
			asciigraph.Height(height),
			asciigraph.Caption(caption),
		))
	}
	return b.String(), nil
}

// PlotSweep overlays one series from several runs on the same axes.
func PlotSweep(runs []*sim.State, name string, width, height int) (string, error) {
	var data [][]float64
	for _, st := range runs {
		if st == nil {
			continue
		}
		s, err := Series(st, name)
		if err != nil {
			return "", err
		}
		data = append(data, s)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("viz: no runs to plot")
	}
	colors := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Green, asciigraph.Yellow, asciigraph.Red, asciigraph.Cyan, asciigraph.Magenta}
	seriesColors := make([]asciigraph.AnsiColor, len(data))
	for i := range seriesColors {
		seriesColors[i] = colors[i%len(colors)]
	}
	return asciigraph.PlotMany(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(seriesColors...),
		asciigraph.Caption(fmt.Sprintf("%s [%s], %d runs", name, seriesUnits[name], len(data))),
	), nil
}

// Summary renders run metrics as an aligned label/value panel.
func Summary(title string, metrics map[string]float64, styles Styles) string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(styles.Label.Render(k))
		b.WriteString(styles.Value.Render(fmt.Sprintf("%.6g", metrics[k])))
		b.WriteString("\n")
	}
	return styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}
