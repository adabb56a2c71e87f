package viz

import "strings"

// Braille Patterns: 2x4 dots per character cell, unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel grid for the trajectory side view. Sub-pixel
// space is (Width*2) x (Height*4).
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
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
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

// Plotter maps a rectangle of trajectory coordinates onto the sub-pixel grid
// with the Y axis flipped so positive height draws upward.
type Plotter struct {
	canvas                 *Canvas
	minX, maxX, minY, maxY float64
}

func (c *Canvas) Plotter(minX, maxX, minY, maxY float64) *Plotter {
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	return &Plotter{canvas: c, minX: minX, maxX: maxX, minY: minY, maxY: maxY}
}

func (p *Plotter) pixel(x, y float64) (int, int) {
	cw := float64(p.canvas.Width*2 - 1)
	ch := float64(p.canvas.Height*4 - 1)
	px := (x - p.minX) / (p.maxX - p.minX) * cw
	py := ch - (y-p.minY)/(p.maxY-p.minY)*ch
	return int(px), int(py)
}

func (p *Plotter) Point(x, y float64) {
	px, py := p.pixel(x, y)
	p.canvas.Set(px, py)
}

func (p *Plotter) Line(x0, y0, x1, y1 float64) {
	px0, py0 := p.pixel(x0, y0)
	px1, py1 := p.pixel(x1, y1)
	p.canvas.DrawLine(px0, py0, px1, py1)
}

// Mark draws a 3x3 blob, used for the projectile position.
func (p *Plotter) Mark(x, y float64) {
	px, py := p.pixel(x, y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			p.canvas.Set(px+dx, py+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
