package quadrature

import (
	"math"

	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/grid"
)

// Mask marks the cells (or nodes) that belong to a region.
type Mask struct {
	nx, ny int
	in     []bool
}

// NewMask evaluates inside(i, j) over an (nx x ny) index space.
func NewMask(nx, ny int, inside func(i, j int) bool) Mask {
	if nx < 1 || ny < 1 {
		return Mask{}
	}
	in := make([]bool, nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			in[i*ny+j] = inside(i, j)
		}
	}
	return Mask{nx: nx, ny: ny, in: in}
}

func (m Mask) Dims() (nx, ny int) { return m.nx, m.ny }
func (m Mask) At(i, j int) bool   { return m.in[i*m.ny+j] }

func (m Mask) empty() bool { return m.nx < 1 || m.ny < 1 }

func (m Mask) shapeOf(f core.Field2D) bool {
	fx, fy := f.Dims()
	return fx == m.nx && fy == m.ny
}

// Count returns the number of cells inside the region.
func (m Mask) Count() int {
	c := 0
	for _, v := range m.in {
		if v {
			c++
		}
	}
	return c
}

// DiskMask marks cell (i, j) when its lower-left node (x_i, y_j) lies within
// radius of (cx, cy). The mask has (Nx-1) x (Ny-1) entries.
func DiskMask(g grid.Grid2D, cx, cy, radius float64) Mask {
	nx, ny := g.Dims()
	return NewMask(nx-1, ny-1, func(i, j int) bool {
		return math.Hypot(g.X.At(i)-cx, g.Y.At(j)-cy) <= radius
	})
}

// NodeDiskMask marks every node within radius of (cx, cy).
func NodeDiskMask(g grid.Grid2D, cx, cy, radius float64) Mask {
	nx, ny := g.Dims()
	return NewMask(nx, ny, func(i, j int) bool {
		return math.Hypot(g.X.At(i)-cx, g.Y.At(j)-cy) <= radius
	})
}

// CellAreas returns (x[i+1]-x[i]) * (y[j+1]-y[j]) for every cell.
func CellAreas(g grid.Grid2D) (core.Field2D, error) {
	nx, ny := g.Dims()
	if nx < 2 || ny < 2 {
		return core.Field2D{}, core.Errorf("CellAreas", -1, core.ErrInvalidGrid, "grid %dx%d", nx, ny)
	}
	dx := g.X.IntervalWidths()
	dy := g.Y.IntervalWidths()
	for i, w := range dx {
		if !(w > 0) {
			return core.Field2D{}, core.Errorf("CellAreas", i, core.ErrDegenerateCell, "x width %g", w)
		}
	}
	for j, w := range dy {
		if !(w > 0) {
			return core.Field2D{}, core.Errorf("CellAreas", j, core.ErrDegenerateCell, "y width %g", w)
		}
	}
	return core.NewField2DFunc(nx-1, ny-1, func(i, j int) float64 { return dx[i] * dy[j] }), nil
}

// LowerLeft drops the last row and column of a node field so that it lines
// up with the cell index space.
func LowerLeft(f core.Field2D) (core.Field2D, error) {
	nx, ny := f.Dims()
	if nx < 2 || ny < 2 {
		return core.Field2D{}, core.Errorf("LowerLeft", -1, core.ErrShapeMismatch, "field %dx%d has no cells", nx, ny)
	}
	return core.NewField2DFunc(nx-1, ny-1, f.At), nil
}

// IntegrateMasked sums cellAreas[i,j]*field[i,j] over the cells inside mask.
// Every cell area must be positive, including cells outside the mask.
func IntegrateMasked(cellAreas core.Field2D, mask Mask, field core.Field2D) (float64, error) {
	if !mask.shapeOf(cellAreas) || !mask.shapeOf(field) {
		ax, ay := cellAreas.Dims()
		fx, fy := field.Dims()
		return 0, core.Errorf("IntegrateMasked", -1, core.ErrShapeMismatch,
			"areas %dx%d, mask %dx%d, field %dx%d", ax, ay, mask.nx, mask.ny, fx, fy)
	}
	if mask.empty() {
		return 0, core.Errorf("IntegrateMasked", -1, core.ErrShapeMismatch, "empty mask")
	}
	for k, a := range cellAreas.Data() {
		if !(a > 0) || math.IsInf(a, 0) {
			return 0, core.Errorf("IntegrateMasked", k, core.ErrDegenerateCell, "area %g", a)
		}
	}

	sum := 0.0
	for i := 0; i < mask.nx; i++ {
		for j := 0; j < mask.ny; j++ {
			if mask.At(i, j) {
				sum += cellAreas.At(i, j) * field.At(i, j)
			}
		}
	}
	return sum, nil
}

// MaskedArea is the total area of the cells inside mask.
func MaskedArea(cellAreas core.Field2D, mask Mask) (float64, error) {
	ax, ay := cellAreas.Dims()
	ones := core.NewField2DFunc(ax, ay, func(i, j int) float64 { return 1 })
	return IntegrateMasked(cellAreas, mask, ones)
}

// AreaWeightedMean returns flux/area over the masked cells.
func AreaWeightedMean(cellAreas core.Field2D, mask Mask, field core.Field2D) (float64, error) {
	flux, err := IntegrateMasked(cellAreas, mask, field)
	if err != nil {
		return 0, err
	}
	area, err := MaskedArea(cellAreas, mask)
	if err != nil {
		return 0, err
	}
	if area == 0 {
		return 0, core.Errorf("AreaWeightedMean", -1, core.ErrDegenerateCell, "mask selects no cells")
	}
	return flux / area, nil
}

// MaskedMean is the unweighted arithmetic mean of field over mask. It ignores
// cell sizes, so it is biased on non-uniform grids.
func MaskedMean(mask Mask, field core.Field2D) (float64, error) {
	if !mask.shapeOf(field) {
		fx, fy := field.Dims()
		return 0, core.Errorf("MaskedMean", -1, core.ErrShapeMismatch, "mask %dx%d, field %dx%d", mask.nx, mask.ny, fx, fy)
	}
	sum, count := 0.0, 0
	for i := 0; i < mask.nx; i++ {
		for j := 0; j < mask.ny; j++ {
			if mask.At(i, j) {
				sum += field.At(i, j)
				count++
			}
		}
	}
	if count == 0 {
		return 0, core.Errorf("MaskedMean", -1, core.ErrShapeMismatch, "mask selects no nodes")
	}
	return sum / float64(count), nil
}

// MaskField returns a copy of field with NaN outside mask. NaN here means
// "undefined outside the region" and is meant for rendering only.
func MaskField(mask Mask, field core.Field2D) (core.Field2D, error) {
	if !mask.shapeOf(field) {
		return core.Field2D{}, core.Errorf("MaskField", -1, core.ErrShapeMismatch, "mask and field shapes differ")
	}
	if mask.empty() {
		return core.Field2D{}, core.Errorf("MaskField", -1, core.ErrShapeMismatch, "empty mask")
	}
	return core.NewField2DFunc(mask.nx, mask.ny, func(i, j int) float64 {
		if mask.At(i, j) {
			return field.At(i, j)
		}
		return math.NaN()
	}), nil
}
