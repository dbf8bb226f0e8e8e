package stencil

import (
	"math"

	"github.com/san-kum/fieldcalc/internal/core"
)

// VelocityFromStreamFunction returns u = dpsi/dy and v = -dpsi/dx.
func VelocityFromStreamFunction(psi core.Field2D, dx, dy Spacing) (core.VectorField, error) {
	u, err := FirstDerivative(psi, AxisY, dy)
	if err != nil {
		return core.VectorField{}, err
	}
	dpdx, err := FirstDerivative(psi, AxisX, dx)
	if err != nil {
		return core.VectorField{}, err
	}
	v := dpdx.Map(func(x float64) float64 { return -x })
	return core.NewVectorField(u, v)
}

// Vorticity returns dv/dx - du/dy.
func Vorticity(u, v core.Field2D, dx, dy Spacing) (core.Field2D, error) {
	if !u.SameShape(v) {
		return core.Field2D{}, core.Errorf("Vorticity", -1, core.ErrShapeMismatch, "u and v shapes differ")
	}
	dvdx, err := FirstDerivative(v, AxisX, dx)
	if err != nil {
		return core.Field2D{}, err
	}
	dudy, err := FirstDerivative(u, AxisY, dy)
	if err != nil {
		return core.Field2D{}, err
	}
	nx, ny := u.Dims()
	return core.NewField2DFunc(nx, ny, func(i, j int) float64 {
		return dvdx.At(i, j) - dudy.At(i, j)
	}), nil
}

// Magnitude returns sqrt(u^2 + v^2) at every node.
func Magnitude(u, v core.Field2D) (core.Field2D, error) {
	if !u.SameShape(v) {
		return core.Field2D{}, core.Errorf("Magnitude", -1, core.ErrShapeMismatch, "u and v shapes differ")
	}
	if u.Empty() {
		return core.Field2D{}, core.Errorf("Magnitude", -1, core.ErrShapeMismatch, "empty field")
	}
	nx, ny := u.Dims()
	return core.NewField2DFunc(nx, ny, func(i, j int) float64 {
		return math.Hypot(u.At(i, j), v.At(i, j))
	}), nil
}
