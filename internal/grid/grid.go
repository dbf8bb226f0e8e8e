// Package grid builds the monotonic coordinate axes that the quadrature and
// stencil packages sample fields on.
package grid

import (
	"math"

	"github.com/san-kum/fieldcalc/internal/core"
	"gonum.org/v1/gonum/floats"
)

// Grid1D is a strictly increasing coordinate sequence with at least two points.
type Grid1D struct {
	x []float64
}

// New validates x and returns a grid holding a private copy of it.
func New(x []float64) (Grid1D, error) {
	if err := Validate(x); err != nil {
		return Grid1D{}, err
	}
	buf := make([]float64, len(x))
	copy(buf, x)
	return Grid1D{x: buf}, nil
}

// Validate checks the Grid1D invariant x[i] < x[i+1] for a raw slice.
func Validate(x []float64) error {
	if len(x) < 2 {
		return core.Errorf("grid", -1, core.ErrInvalidGrid, "need at least 2 points, got %d", len(x))
	}
	for i := 0; i < len(x)-1; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(x[i+1]) || !(x[i] < x[i+1]) {
			return core.Errorf("grid", i, core.ErrInvalidGrid, "x[%d]=%g not below x[%d]=%g", i, x[i], i+1, x[i+1])
		}
	}
	return nil
}

func checkBounds(op string, a, b float64, n int) error {
	if n < 2 {
		return core.Errorf(op, -1, core.ErrInvalidGrid, "n=%d, need n >= 2", n)
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) || a >= b {
		return core.Errorf(op, -1, core.ErrInvalidGrid, "bounds [%g, %g]", a, b)
	}
	return nil
}

// BuildUniform returns n evenly spaced points spanning [a, b] inclusive.
func BuildUniform(a, b float64, n int) (Grid1D, error) {
	if err := checkBounds("BuildUniform", a, b, n); err != nil {
		return Grid1D{}, err
	}
	return Grid1D{x: floats.Span(make([]float64, n), a, b)}, nil
}

// BuildClustered maps a uniform grid s on [-1, 1] through
// tanh(2*s*artanh(clipRadius)) and rescales the result onto [a, b], which
// concentrates points near both ends. clipRadius must lie in (0, 1).
func BuildClustered(a, b float64, n int, clipRadius float64) (Grid1D, error) {
	if err := checkBounds("BuildClustered", a, b, n); err != nil {
		return Grid1D{}, err
	}
	if !(clipRadius > 0 && clipRadius < 1) {
		return Grid1D{}, core.Errorf("BuildClustered", -1, core.ErrInvalidGrid, "clip radius %g outside (0, 1)", clipRadius)
	}
	s := floats.Span(make([]float64, n), -1, 1)
	k := 2 * math.Atanh(clipRadius)
	for i := range s {
		s[i] = math.Tanh(k * s[i])
	}
	lo, hi := floats.Min(s), floats.Max(s)
	x := make([]float64, n)
	for i, v := range s {
		x[i] = a + (v-lo)/(hi-lo)*(b-a)
	}
	x[0], x[n-1] = a, b
	if err := Validate(x); err != nil {
		return Grid1D{}, err
	}
	return Grid1D{x: x}, nil
}

// BuildQuadratic returns x = a + s^2 (b - a) for s uniform on [0, 1]; points
// crowd towards a.
func BuildQuadratic(a, b float64, n int) (Grid1D, error) {
	if err := checkBounds("BuildQuadratic", a, b, n); err != nil {
		return Grid1D{}, err
	}
	s := floats.Span(make([]float64, n), 0, 1)
	x := make([]float64, n)
	for i, v := range s {
		x[i] = a + v*v*(b-a)
	}
	x[n-1] = b
	return Grid1D{x: x}, nil
}

// Len returns the number of nodes.
func (g Grid1D) Len() int { return len(g.x) }

// At returns the i-th coordinate.
func (g Grid1D) At(i int) float64 { return g.x[i] }

// First and Last return the end points.
func (g Grid1D) First() float64 { return g.x[0] }
func (g Grid1D) Last() float64  { return g.x[len(g.x)-1] }

// Span returns x[last] - x[first].
func (g Grid1D) Span() float64 { return g.Last() - g.First() }

// Points returns a copy of the coordinates.
func (g Grid1D) Points() []float64 {
	out := make([]float64, len(g.x))
	copy(out, g.x)
	return out
}

// IntervalWidths returns the per-cell widths x[i+1]-x[i], length N-1.
func (g Grid1D) IntervalWidths() []float64 {
	w := make([]float64, len(g.x)-1)
	for i := range w {
		w[i] = g.x[i+1] - g.x[i]
	}
	return w
}

// NodeWidths returns the per-node weights: half the distance to each
// neighbour, with a single half-interval at the two boundary nodes.
func (g Grid1D) NodeWidths() []float64 {
	n := len(g.x)
	w := make([]float64, n)
	w[0] = (g.x[1] - g.x[0]) / 2
	w[n-1] = (g.x[n-1] - g.x[n-2]) / 2
	for i := 1; i < n-1; i++ {
		w[i] = (g.x[i]-g.x[i-1])/2 + (g.x[i+1]-g.x[i])/2
	}
	return w
}

// Midpoints returns the N-1 interval centres.
func (g Grid1D) Midpoints() []float64 {
	m := make([]float64, len(g.x)-1)
	for i := range m {
		m[i] = (g.x[i] + g.x[i+1]) / 2
	}
	return m
}

// IsUniform reports whether all interval widths agree to within relTol of
// the mean width.
func (g Grid1D) IsUniform(relTol float64) bool {
	w := g.IntervalWidths()
	h := g.Span() / float64(len(w))
	for _, v := range w {
		if math.Abs(v-h) > relTol*h {
			return false
		}
	}
	return true
}

// Sample evaluates f at every node.
func (g Grid1D) Sample(f func(x float64) float64) []float64 {
	out := make([]float64, len(g.x))
	for i, v := range g.x {
		out[i] = f(v)
	}
	return out
}
