package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/windsim/internal/sim"
)

type Point struct{ X, Y float64 }

// Portrait pairs two recorded series of a run, e.g. generator speed against
// generator torque to show the torque-speed operating curve.
type Portrait struct {
	XName, YName string
	Points       []Point
}

// NewPortrait builds a portrait from two of the column names of [sim.State].
func NewPortrait(st *sim.State, xName, yName string) (*Portrait, error) {
	names, cols := st.Columns()
	var xs, ys []float64
	for i, name := range names {
		if name == xName {
			xs = cols[i]
		}
		if name == yName {
			ys = cols[i]
		}
	}
	if xs == nil {
		return nil, fmt.Errorf("analysis: unknown series %q", xName)
	}
	if ys == nil {
		return nil, fmt.Errorf("analysis: unknown series %q", yName)
	}

	p := &Portrait{XName: xName, YName: yName, Points: make([]Point, len(xs))}
	for i := range xs {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p, nil
}

// ToASCII rasterises the portrait onto a width x height character grid.
func (p *Portrait) ToASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX = min(minX, pt.X)
		maxX = max(maxX, pt.X)
		minY = min(minY, pt.Y)
		maxY = max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%.4g, %.4g]\n", p.YName, minY, maxY)
	for _, row := range canvas {
		sb.WriteString("│")
		sb.WriteString(string(row))
		sb.WriteString("\n")
	}
	sb.WriteString("└" + strings.Repeat("─", width) + "\n")
	fmt.Fprintf(&sb, " %s [%.4g, %.4g]\n", p.XName, minX, maxX)
	return sb.String()
}
