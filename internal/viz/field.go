package viz

import (
	"math"
	"strings"

	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/grid"
)

// ramp runs from low to high; NaN renders as a space.
const ramp = ".:-=+*#%@"

// Heatmap shades f on a width x height character block. x runs left to
// right and y bottom to top; nodes are picked by nearest index.
func Heatmap(f core.Field2D, width, height int) string {
	nx, ny := f.Dims()
	if nx == 0 || ny == 0 || width <= 0 || height <= 0 {
		return ""
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range f.Data() {
		if math.IsNaN(v) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 || math.IsInf(rng, 0) || math.IsNaN(rng) {
		rng = 1
	}

	pick := func(k, cells, n int) int {
		if cells == 1 {
			return 0
		}
		return int(math.Round(float64(k) * float64(n-1) / float64(cells-1)))
	}

	var b strings.Builder
	for row := 0; row < height; row++ {
		j := pick(height-1-row, height, ny)
		for col := 0; col < width; col++ {
			v := f.At(pick(col, width, nx), j)
			if math.IsNaN(v) {
				b.WriteByte(' ')
				continue
			}
			idx := int((v - lo) / rng * float64(len(ramp)-1))
			b.WriteByte(ramp[min(max(idx, 0), len(ramp)-1)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// MeshPlot marks every node of g on a Braille canvas of width x height
// characters, framed by the domain boundary.
func MeshPlot(g grid.Grid2D, width, height int) string {
	c := NewCanvas(width, height)
	w, h := c.Size()
	pw, ph := w-1, h-1

	toPx := func(x, y float64) (int, int) {
		px := (x - g.X.First()) / g.X.Span() * float64(pw)
		py := (g.Y.Last() - y) / g.Y.Span() * float64(ph)
		return int(math.Round(px)), int(math.Round(py))
	}

	c.Frame()

	for _, x := range g.X.Points() {
		for _, y := range g.Y.Points() {
			c.Dot(toPx(x, y))
		}
	}
	return c.String()
}
