package stencil

import (
	"math"

	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/grid"
)

// Spacing holds the interval widths along one axis, either as one uniform
// width or as one width per interval.
type Spacing struct {
	h      float64
	widths []float64
}

// Uniform is a spacing where every interval has width h.
func Uniform(h float64) Spacing { return Spacing{h: h} }

// Widths is a per-interval spacing; w[k] is the width between nodes k and k+1.
func Widths(w []float64) Spacing {
	buf := make([]float64, len(w))
	copy(buf, w)
	return Spacing{widths: buf}
}

// FromGrid takes the interval widths of g.
func FromGrid(g grid.Grid1D) Spacing { return Spacing{widths: g.IntervalWidths()} }

// IsUniform reports whether the spacing was built from a single width.
func (s Spacing) IsUniform() bool { return s.widths == nil }

// width is the distance between node k and node k+1.
func (s Spacing) width(k int) float64 {
	if s.widths == nil {
		return s.h
	}
	return s.widths[k]
}

// distance is the distance from node lo to node hi.
func (s Spacing) distance(lo, hi int) float64 {
	d := 0.0
	for k := lo; k < hi; k++ {
		d += s.width(k)
	}
	return d
}

// check validates the spacing for an axis of n nodes.
func (s Spacing) check(op string, n int) error {
	if n < 2 {
		return core.Errorf(op, -1, core.ErrShapeMismatch, "axis has %d nodes, need at least 2", n)
	}
	if s.widths == nil {
		if !(s.h > 0) || math.IsInf(s.h, 0) {
			return core.Errorf(op, -1, core.ErrDegenerateCell, "uniform spacing %g", s.h)
		}
		return nil
	}
	if len(s.widths) != n-1 {
		return core.Errorf(op, -1, core.ErrShapeMismatch, "%d widths for %d nodes", len(s.widths), n)
	}
	for k, w := range s.widths {
		if !(w > 0) || math.IsInf(w, 0) {
			return core.Errorf(op, k, core.ErrDegenerateCell, "width %g", w)
		}
	}
	return nil
}
