package core

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Field2D is a scalar field on an (Nx x Ny) node grid, indexed [i][j] = (x_i, y_j).
type Field2D struct {
	m *mat.Dense
}

// NewField2D copies data (row-major, len nx*ny) into a new field.
func NewField2D(nx, ny int, data []float64) (Field2D, error) {
	if nx < 1 || ny < 1 {
		return Field2D{}, Errorf("NewField2D", -1, ErrShapeMismatch, "dims %dx%d", nx, ny)
	}
	if data == nil {
		return Field2D{m: mat.NewDense(nx, ny, nil)}, nil
	}
	if len(data) != nx*ny {
		return Field2D{}, Errorf("NewField2D", -1, ErrShapeMismatch, "len %d != %dx%d", len(data), nx, ny)
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return Field2D{m: mat.NewDense(nx, ny, buf)}, nil
}

// NewField2DFunc samples f(i, j) at every node. Non-positive dims give the
// empty field.
func NewField2DFunc(nx, ny int, f func(i, j int) float64) Field2D {
	if nx < 1 || ny < 1 {
		return Field2D{}
	}
	buf := make([]float64, nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			buf[i*ny+j] = f(i, j)
		}
	}
	return Field2D{m: mat.NewDense(nx, ny, buf)}
}

// Dims returns the node counts along x and y.
func (f Field2D) Dims() (nx, ny int) {
	if f.m == nil {
		return 0, 0
	}
	return f.m.Dims()
}

func (f Field2D) At(i, j int) float64 { return f.m.At(i, j) }

// Row returns a copy of the values along y at fixed x index i.
func (f Field2D) Row(i int) []float64 {
	return mat.Row(nil, i, f.m)
}

// Col returns a copy of the values along x at fixed y index j.
func (f Field2D) Col(j int) []float64 {
	return mat.Col(nil, j, f.m)
}

// Data returns a row-major copy of the values.
func (f Field2D) Data() []float64 {
	if f.m == nil {
		return nil
	}
	raw := f.m.RawMatrix()
	nx, ny := f.Dims()
	out := make([]float64, 0, nx*ny)
	for i := 0; i < nx; i++ {
		out = append(out, raw.Data[i*raw.Stride:i*raw.Stride+ny]...)
	}
	return out
}

// Empty reports whether the field has no nodes.
func (f Field2D) Empty() bool { return f.m == nil }

// Matrix exposes the field as a read-only gonum matrix.
func (f Field2D) Matrix() mat.Matrix { return f.m }

// SameShape reports whether g has the same dimensions as f.
func (f Field2D) SameShape(g Field2D) bool {
	fx, fy := f.Dims()
	gx, gy := g.Dims()
	return fx == gx && fy == gy
}

// Map returns a new field with fn applied to every node.
func (f Field2D) Map(fn func(v float64) float64) Field2D {
	nx, ny := f.Dims()
	return NewField2DFunc(nx, ny, func(i, j int) float64 { return fn(f.At(i, j)) })
}

// MaxAbsDiff returns max |f - g| over all nodes.
func (f Field2D) MaxAbsDiff(g Field2D) (float64, error) {
	if !f.SameShape(g) {
		return 0, Errorf("MaxAbsDiff", -1, ErrShapeMismatch, "fields differ in shape")
	}
	var d mat.Dense
	d.Sub(f.m, g.m)
	worst := 0.0
	nx, ny := f.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			worst = math.Max(worst, math.Abs(d.At(i, j)))
		}
	}
	return worst, nil
}

// VectorField is an ordered pair of components sharing one grid.
type VectorField struct {
	U, V Field2D
}

// NewVectorField checks that both components share a shape.
func NewVectorField(u, v Field2D) (VectorField, error) {
	if !u.SameShape(v) {
		return VectorField{}, Errorf("NewVectorField", -1, ErrShapeMismatch, "component shapes differ")
	}
	return VectorField{U: u, V: v}, nil
}
