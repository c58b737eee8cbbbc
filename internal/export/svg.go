// Package export renders stored runs as standalone SVG documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/windsim/internal/analysis"
	"github.com/san-kum/windsim/internal/sim"
	"github.com/san-kum/windsim/internal/viz"
)

const panelGap = 24

type bounds struct {
	minX, maxX, minY, maxY float64
}

func boundsOf(xs, ys []float64) bounds {
	b := bounds{minX: xs[0], maxX: xs[0], minY: ys[0], maxY: ys[0]}
	for i := range xs {
		b.minX = min(b.minX, xs[i])
		b.maxX = max(b.maxX, xs[i])
		b.minY = min(b.minY, ys[i])
		b.maxY = max(b.maxY, ys[i])
	}
	// pad y so flat series sit mid-panel
	ry := b.maxY - b.minY
	if ry == 0 {
		ry = max(1, b.maxY*0.1)
	}
	b.minY -= ry * 0.1
	b.maxY += ry * 0.1
	if b.maxX == b.minX {
		b.maxX = b.minX + 1
	}
	return b
}

// path writes an SVG path for (xs, ys) scaled into the box at (ox, oy).
func path(sb *strings.Builder, xs, ys []float64, b bounds, ox, oy, w, h float64) {
	sb.WriteString(`d="`)
	for i := range xs {
		x := ox + (xs[i]-b.minX)/(b.maxX-b.minX)*w
		y := oy + h - (ys[i]-b.minY)/(b.maxY-b.minY)*h
		if i == 0 {
			fmt.Fprintf(sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"`)
}

func header(sb *strings.Builder, width, height int, bg string) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg)
}

// SeriesSVG draws each named series against time in its own panel, stacked
// top to bottom.
func SeriesSVG(w io.Writer, st *sim.State, names []string, width, height int, theme viz.Theme) error {
	if st == nil || st.Len() < 2 {
		return fmt.Errorf("export: need at least two samples")
	}
	if len(names) == 0 {
		return fmt.Errorf("export: no series selected")
	}

	var sb strings.Builder
	header(&sb, width, height, "#0a0a0a")

	panelH := (float64(height) - panelGap*float64(len(names))) / float64(len(names))
	for i, name := range names {
		ys, err := viz.Series(st, name)
		if err != nil {
			return err
		}
		b := boundsOf(st.Time, ys)
		oy := float64(i)*(panelH+panelGap) + panelGap

		fmt.Fprintf(&sb, `<text x="4" y="%.1f" fill="%s" font-family="monospace" font-size="12">%s [%.4g, %.4g]</text>
`, oy-6, theme.Text, name, b.minY, b.maxY)
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" `, theme.Primary)
		path(&sb, st.Time, ys, b, 0, oy, float64(width), panelH)
		sb.WriteString("/>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// PortraitSVG draws a phase portrait as a single trajectory.
func PortraitSVG(w io.Writer, p *analysis.Portrait, width, height int, theme viz.Theme) error {
	if p == nil || len(p.Points) < 2 {
		return fmt.Errorf("export: portrait needs at least two points")
	}
	xs := make([]float64, len(p.Points))
	ys := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}

	var sb strings.Builder
	header(&sb, width, height, "#0a0a0a")
	fmt.Fprintf(&sb, `<text x="4" y="14" fill="%s" font-family="monospace" font-size="12">%s vs %s</text>
`, theme.Text, p.YName, p.XName)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" `, theme.Accent)
	path(&sb, xs, ys, boundsOf(xs, ys), 0, 0, float64(width), float64(height))
	sb.WriteString("/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
