package viz

import "strings"

// blankCell is the empty Braille glyph; each cell holds a 2x4 block of dots.
const blankCell = '⠀'

// dotBit returns the Braille bit for dot (dx, dy) inside a cell. Dots 1-6
// fill the left then right column of the top three rows; 7 and 8 sit below.
func dotBit(dx, dy int) rune {
	if dy == 3 {
		return 0x40 << dx
	}
	return 1 << (dy + 3*dx)
}

// Canvas is a dot raster for mesh plots. Dot (0, 0) is the top-left corner.
type Canvas struct {
	cols, rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
	c.Reset()
	return c
}

// Size is the raster size in dots.
func (c *Canvas) Size() (w, h int) { return 2 * c.cols, 4 * c.rows }

func (c *Canvas) cell(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= 2*c.cols || y >= 4*c.rows {
		return 0, false
	}
	return (y/4)*c.cols + x/2, true
}

// Dot lights (x, y). Dots off the raster are dropped.
func (c *Canvas) Dot(x, y int) {
	if k, ok := c.cell(x, y); ok {
		c.cells[k] |= dotBit(x%2, y%4)
	}
}

func (c *Canvas) Lit(x, y int) bool {
	k, ok := c.cell(x, y)
	return ok && c.cells[k]&dotBit(x%2, y%4) != 0
}

// HRule lights row y from x0 to x1 inclusive.
func (c *Canvas) HRule(y, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		c.Dot(x, y)
	}
}

// VRule lights column x from y0 to y1 inclusive.
func (c *Canvas) VRule(x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		c.Dot(x, y)
	}
}

// Frame outlines the raster edge, i.e. the domain boundary of a mesh plot.
func (c *Canvas) Frame() {
	w, h := c.Size()
	if w == 0 || h == 0 {
		return
	}
	c.HRule(0, 0, w-1)
	c.HRule(h-1, 0, w-1)
	c.VRule(0, 0, h-1)
	c.VRule(w-1, 0, h-1)
}

func (c *Canvas) Reset() {
	for k := range c.cells {
		c.cells[k] = blankCell
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for r := 0; r < c.rows; r++ {
		b.WriteString(string(c.cells[r*c.cols : (r+1)*c.cols]))
		b.WriteByte('\n')
	}
	return b.String()
}
