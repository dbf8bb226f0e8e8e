package grid

import (
	"github.com/san-kum/fieldcalc/internal/core"
)

// Grid2D is the tensor product of two independent axes.
type Grid2D struct {
	X, Y Grid1D
}

// Build2D combines two axes. Each axis already satisfies the Grid1D
// invariant, so no further validation is done beyond rejecting zero values.
func Build2D(x, y Grid1D) (Grid2D, error) {
	if x.Len() < 2 || y.Len() < 2 {
		return Grid2D{}, core.Errorf("Build2D", -1, core.ErrInvalidGrid, "axis not built")
	}
	return Grid2D{X: x, Y: y}, nil
}

// Dims returns (Nx, Ny).
func (g Grid2D) Dims() (nx, ny int) { return g.X.Len(), g.Y.Len() }

// Mesh returns the coordinate pair fields X[i][j] = x_i and Y[i][j] = y_j.
func (g Grid2D) Mesh() (core.Field2D, core.Field2D) {
	nx, ny := g.Dims()
	X := core.NewField2DFunc(nx, ny, func(i, j int) float64 { return g.X.At(i) })
	Y := core.NewField2DFunc(nx, ny, func(i, j int) float64 { return g.Y.At(j) })
	return X, Y
}

// Sample evaluates f at every node.
func (g Grid2D) Sample(f func(x, y float64) float64) core.Field2D {
	nx, ny := g.Dims()
	return core.NewField2DFunc(nx, ny, func(i, j int) float64 { return f(g.X.At(i), g.Y.At(j)) })
}

// CheckField returns ErrShapeMismatch when f does not have the grid's shape.
func (g Grid2D) CheckField(op string, f core.Field2D) error {
	nx, ny := g.Dims()
	fx, fy := f.Dims()
	if fx != nx || fy != ny {
		return core.Errorf(op, -1, core.ErrShapeMismatch, "field %dx%d on grid %dx%d", fx, fy, nx, ny)
	}
	return nil
}
