package viz

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a character grid addressed in braille sub-pixels, so a canvas of
// Width x Height cells is (2*Width) x (4*Height) pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine uses Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRotor draws a three-bladed rotor seen from upwind with blade 1 at
// azimuth (radians, zero pointing up, clockwise). pitch in degrees narrows
// the drawn blade tips as the blades feather.
func (c *Canvas) DrawRotor(azimuth, pitch float64) {
	cx, cy := c.Width, c.Height*2
	r := float64(min(c.Width, c.Height*2)) - 1
	for b := 0; b < 3; b++ {
		a := azimuth + float64(b)*2*math.Pi/3
		tipX := cx + int(math.Round(r*math.Sin(a)))
		tipY := cy - int(math.Round(r*math.Cos(a)))
		c.DrawLine(cx, cy, tipX, tipY)

		chord := 0.12 * r * math.Cos(pitch*math.Pi/180)
		rootX := cx + int(math.Round(0.3*r*math.Sin(a)+chord*math.Cos(a)))
		rootY := cy - int(math.Round(0.3*r*math.Cos(a)-chord*math.Sin(a)))
		c.DrawLine(rootX, rootY, tipX, tipY)
	}
	c.Set(cx, cy)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
