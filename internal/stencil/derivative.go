package stencil

import (
	"github.com/san-kum/fieldcalc/internal/core"
)

// Axis names for two-dimensional fields indexed [i][j] = (x_i, y_j).
const (
	AxisX = 0
	AxisY = 1
)

// rowChunk is the minimum number of lines handed to one worker.
const rowChunk = 64

// Derivative1D returns df/dx for values sampled on nodes separated by sp.
func Derivative1D(values []float64, sp Spacing) ([]float64, error) {
	n := len(values)
	if err := sp.check("Derivative1D", n); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = apply(At(i, n), sp, func(k int) float64 { return values[k] })
	}
	return out, nil
}

func apply(s Stencil, sp Spacing, f func(k int) float64) float64 {
	return (f(s.Hi) - f(s.Lo)) / sp.distance(s.Lo, s.Hi)
}

// FirstDerivative differentiates field along axis (AxisX or AxisY) and
// returns a new field of identical shape.
func FirstDerivative(field core.Field2D, axis int, sp Spacing) (core.Field2D, error) {
	nx, ny := field.Dims()
	var n, lines int
	switch axis {
	case AxisX:
		n, lines = nx, ny
	case AxisY:
		n, lines = ny, nx
	default:
		return core.Field2D{}, core.Errorf("FirstDerivative", axis, core.ErrAxisOutOfRange, "axis must be %d or %d", AxisX, AxisY)
	}
	if err := sp.check("FirstDerivative", n); err != nil {
		return core.Field2D{}, err
	}

	stencils := make([]Stencil, n)
	for i := range stencils {
		stencils[i] = At(i, n)
	}

	out := make([]float64, nx*ny)
	core.ParallelRows(lines, rowChunk, func(start, end int) {
		for line := start; line < end; line++ {
			for _, s := range stencils {
				if axis == AxisX {
					j := line
					out[s.I*ny+j] = apply(s, sp, func(k int) float64 { return field.At(k, j) })
				} else {
					i := line
					out[i*ny+s.I] = apply(s, sp, func(k int) float64 { return field.At(i, k) })
				}
			}
		}
	})
	return core.NewField2D(nx, ny, out)
}
