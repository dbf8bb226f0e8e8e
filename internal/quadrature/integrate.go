// Package quadrature integrates sampled scalar functions over one-dimensional
// grids and over masked regions of two-dimensional grids. Every rule uses the
// actual cell widths, so non-uniform grids are handled without resampling.
package quadrature

import (
	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/grid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/integrate"
)

// uniformTol is the relative width tolerance under which NodeRectangle
// accepts a grid as uniform.
const uniformTol = 1e-9

// Integrate approximates the integral of values sampled on g using rule.
// Midpoint expects N-1 values (one per interval); every other rule expects N.
func Integrate(values []float64, g grid.Grid1D, rule Rule) (float64, error) {
	if g.Len() < 2 {
		return 0, core.Errorf("Integrate", -1, core.ErrInvalidGrid, "grid has %d points", g.Len())
	}
	return integrate1D(values, g.Points(), rule)
}

// IntegrateXY is Integrate for raw coordinates; x is validated first.
func IntegrateXY(values, x []float64, rule Rule) (float64, error) {
	if err := grid.Validate(x); err != nil {
		return 0, err
	}
	return integrate1D(values, x, rule)
}

// IntegrateFunc samples f where rule needs it and integrates the samples.
func IntegrateFunc(f func(x float64) float64, g grid.Grid1D, rule Rule) (float64, error) {
	if g.Len() < 2 {
		return 0, core.Errorf("IntegrateFunc", -1, core.ErrInvalidGrid, "grid has %d points", g.Len())
	}
	if rule == Midpoint {
		mid := g.Midpoints()
		values := make([]float64, len(mid))
		for i, m := range mid {
			values[i] = f(m)
		}
		return Integrate(values, g, rule)
	}
	return Integrate(g.Sample(f), g, rule)
}

func integrate1D(values, x []float64, rule Rule) (float64, error) {
	n := len(x)
	want := n
	if rule == Midpoint {
		want = n - 1
	}
	if len(values) != want {
		return 0, core.Errorf("Integrate", -1, core.ErrShapeMismatch,
			"%s needs %d values on %d nodes, got %d", rule, want, n, len(values))
	}

	widths, err := intervalWidths(x)
	if err != nil {
		return 0, err
	}

	switch rule {
	case Midpoint:
		return floats.Dot(widths, values), nil
	case LeftEndpoint:
		return floats.Dot(widths, values[:n-1]), nil
	case IntervalTrapezoid:
		sum := 0.0
		for i, w := range widths {
			sum += w * (values[i] + values[i+1]) / 2
		}
		return sum, nil
	case NodeTrapezoid:
		return floats.Dot(nodeWidths(widths), values), nil
	case NodeRectangle:
		h := (x[n-1] - x[0]) / float64(n-1)
		for i, w := range widths {
			if !scalar.EqualWithinRel(w, h, uniformTol) {
				return 0, core.Errorf("Integrate", i, core.ErrInvalidGrid, "%s needs a uniform grid", rule)
			}
		}
		return h * floats.Sum(values), nil
	case Simpson:
		if n < 3 {
			return 0, core.Errorf("Integrate", -1, core.ErrInvalidGrid, "%s needs at least 3 nodes", rule)
		}
		return integrate.Simpsons(x, values), nil
	default:
		return 0, core.Errorf("Integrate", -1, core.ErrUnknownRule, "rule %d", int(rule))
	}
}

// intervalWidths returns x[i+1]-x[i] and fails on any non-positive width.
func intervalWidths(x []float64) ([]float64, error) {
	w := make([]float64, len(x)-1)
	for i := range w {
		w[i] = x[i+1] - x[i]
		if !(w[i] > 0) {
			return nil, core.Errorf("Integrate", i, core.ErrDegenerateCell, "width %g", w[i])
		}
	}
	return w, nil
}

// nodeWidths turns N-1 interval widths into N node weights.
func nodeWidths(widths []float64) []float64 {
	n := len(widths) + 1
	w := make([]float64, n)
	w[0] = widths[0] / 2
	w[n-1] = widths[n-2] / 2
	for i := 1; i < n-1; i++ {
		w[i] = widths[i-1]/2 + widths[i]/2
	}
	return w
}
