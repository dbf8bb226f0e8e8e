// Package section analyses a measured river cross-section: a streamwise
// velocity u(y, z) sampled on a transverse axis y and a vertical axis z that
// rises towards the free surface. Nodes with u == 0 lie in the bed.
package section

import (
	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/grid"
	"github.com/san-kum/fieldcalc/internal/quadrature"
)

// uniformTol is the relative spread of widths accepted as uniform spacing.
const uniformTol = 1e-9

type CrossSection struct {
	Y grid.Grid1D
	Z grid.Grid1D
	U core.Field2D // U.At(i, j) = u(y_i, z_j)
}

// Summary collects the scalar results of a cross-section analysis.
type Summary struct {
	Area               float64   `json:"area"`
	MeanVelocity       float64   `json:"mean_velocity"`
	VolumeFlux         float64   `json:"volume_flux"`
	VolumeFluxFromMean float64   `json:"volume_flux_from_mean"`
	WetNodes           int       `json:"wet_nodes"`
	Depth              []float64 `json:"depth"`
}

func New(y, z []float64, u core.Field2D) (*CrossSection, error) {
	gy, err := grid.New(y)
	if err != nil {
		return nil, err
	}
	gz, err := grid.New(z)
	if err != nil {
		return nil, err
	}
	g, err := grid.Build2D(gy, gz)
	if err != nil {
		return nil, err
	}
	if err := g.CheckField("section.New", u); err != nil {
		return nil, err
	}
	return &CrossSection{Y: gy, Z: gz, U: u}, nil
}

// WetMask marks nodes carrying flow.
func (c *CrossSection) WetMask() quadrature.Mask {
	ny, nz := c.U.Dims()
	return quadrature.NewMask(ny, nz, func(i, j int) bool { return c.U.At(i, j) != 0 })
}

// DepthProfile returns the water depth at every y node: -z of the last dry
// node below the first wet one. Dry columns have zero depth.
func (c *CrossSection) DepthProfile() ([]float64, error) {
	ny, nz := c.U.Dims()
	depth := make([]float64, ny)
	for i := 0; i < ny; i++ {
		for j := 0; j < nz; j++ {
			if c.U.At(i, j) == 0 {
				continue
			}
			if j == 0 {
				return nil, core.Errorf("DepthProfile", i, core.ErrShapeMismatch, "column is wet at the lowest z node, bed lies below the grid")
			}
			depth[i] = -c.Z.At(j - 1)
			break
		}
	}
	return depth, nil
}

// Area integrates the depth profile across y with the trapezoidal rule.
func (c *CrossSection) Area() (float64, error) {
	depth, err := c.DepthProfile()
	if err != nil {
		return 0, err
	}
	return quadrature.Integrate(depth, c.Y, quadrature.IntervalTrapezoid)
}

// MeanVelocity is the plain mean of u over wet nodes.
func (c *CrossSection) MeanVelocity() (float64, error) {
	return quadrature.MaskedMean(c.WetMask(), c.U)
}

// Spacing returns the uniform node spacing on each axis.
func (c *CrossSection) Spacing() (dy, dz float64, err error) {
	if !c.Y.IsUniform(uniformTol) {
		return 0, 0, core.Errorf("Spacing", -1, core.ErrInvalidGrid, "y axis is not uniformly spaced")
	}
	if !c.Z.IsUniform(uniformTol) {
		return 0, 0, core.Errorf("Spacing", -1, core.ErrInvalidGrid, "z axis is not uniformly spaced")
	}
	return c.Y.At(1) - c.Y.At(0), c.Z.At(1) - c.Z.At(0), nil
}

// VolumeFlux sums u*dy*dz over every node.
func (c *CrossSection) VolumeFlux() (float64, error) {
	dy, dz, err := c.Spacing()
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, v := range c.U.Data() {
		total += v
	}
	return total * dy * dz, nil
}

// VolumeFluxFromMean is the mean velocity times the wetted area counted in
// whole cells.
func (c *CrossSection) VolumeFluxFromMean() (float64, error) {
	dy, dz, err := c.Spacing()
	if err != nil {
		return 0, err
	}
	mean, err := c.MeanVelocity()
	if err != nil {
		return 0, err
	}
	return mean * float64(c.WetMask().Count()) * dy * dz, nil
}

// Analyze runs every measurement.
func (c *CrossSection) Analyze() (Summary, error) {
	var s Summary
	var err error
	if s.Depth, err = c.DepthProfile(); err != nil {
		return Summary{}, err
	}
	if s.Area, err = c.Area(); err != nil {
		return Summary{}, err
	}
	if s.MeanVelocity, err = c.MeanVelocity(); err != nil {
		return Summary{}, err
	}
	if s.VolumeFlux, err = c.VolumeFlux(); err != nil {
		return Summary{}, err
	}
	if s.VolumeFluxFromMean, err = c.VolumeFluxFromMean(); err != nil {
		return Summary{}, err
	}
	s.WetNodes = c.WetMask().Count()
	return s, nil
}
