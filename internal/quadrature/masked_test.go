package quadrature

import (
	"math"
	"testing"

	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(t *testing.T, n int, clustered bool) grid.Grid2D {
	t.Helper()
	var (
		ax  grid.Grid1D
		err error
	)
	if clustered {
		ax, err = grid.BuildClustered(-0.5, 0.5, n, 0.5)
	} else {
		ax, err = grid.BuildUniform(-0.5, 0.5, n)
	}
	require.NoError(t, err)
	g, err := grid.Build2D(ax, ax)
	require.NoError(t, err)
	return g
}

func diskArea(t *testing.T, g grid.Grid2D) float64 {
	areas, err := CellAreas(g)
	require.NoError(t, err)
	a, err := MaskedArea(areas, DiskMask(g, 0, 0, 0.5))
	require.NoError(t, err)
	return a
}

func TestDiskAreaConverges(t *testing.T) {
	exact := math.Pi * 0.25

	coarse := math.Abs(diskArea(t, square(t, 11, false)) - exact)
	fine := math.Abs(diskArea(t, square(t, 401, false)) - exact)
	assert.Less(t, fine, 1e-3)
	assert.Less(t, fine, coarse)

	prev := math.Inf(1)
	for _, n := range []int{11, 21, 51, 101, 201} {
		e := math.Abs(diskArea(t, square(t, n, true)) - exact)
		assert.Less(t, e, prev, "clustered n=%d", n)
		prev = e
	}
}

func TestCellAreasSumToDomain(t *testing.T) {
	g := square(t, 9, true)
	areas, err := CellAreas(g)
	require.NoError(t, err)
	nx, ny := areas.Dims()
	assert.Equal(t, 8, nx)
	assert.Equal(t, 8, ny)

	all := NewMask(nx, ny, func(i, j int) bool { return true })
	total, err := MaskedArea(areas, all)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, total, 1e-14)
	assert.Equal(t, 64, all.Count())
}

func TestAreaWeightedMeanVersusMaskedMean(t *testing.T) {
	g := square(t, 31, true)
	u := g.Sample(func(x, y float64) float64 { return 1 - 4*(x*x+y*y) })
	cellU, err := LowerLeft(u)
	require.NoError(t, err)
	areas, err := CellAreas(g)
	require.NoError(t, err)
	mask := DiskMask(g, 0, 0, 0.5)

	weighted, err := AreaWeightedMean(areas, mask, cellU)
	require.NoError(t, err)
	naive, err := MaskedMean(mask, cellU)
	require.NoError(t, err)

	// exact mean of 1 - r^2/R^2 over the disk is 1/2
	assert.Less(t, math.Abs(weighted-0.5), math.Abs(naive-0.5))
}

func TestMaskedShapeErrors(t *testing.T) {
	g := square(t, 5, false)
	areas, _ := CellAreas(g)
	u := g.Sample(func(x, y float64) float64 { return 1 })

	_, err := IntegrateMasked(areas, DiskMask(g, 0, 0, 0.5), u)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)

	_, err = IntegrateMasked(areas, NodeDiskMask(g, 0, 0, 0.5), u)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)

	_, err = MaskedMean(DiskMask(g, 0, 0, 0.5), u)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)

	empty := NewMask(4, 4, func(i, j int) bool { return false })
	_, err = AreaWeightedMean(areas, empty, areas)
	assert.ErrorIs(t, err, core.ErrDegenerateCell)

	bad, _ := core.NewField2D(4, 4, make([]float64, 16))
	_, err = IntegrateMasked(bad, NewMask(4, 4, func(i, j int) bool { return i == 0 }), bad)
	assert.ErrorIs(t, err, core.ErrDegenerateCell)
}

func TestMaskField(t *testing.T) {
	g := square(t, 5, false)
	u := g.Sample(func(x, y float64) float64 { return 2 })
	mask := NodeDiskMask(g, 0, 0, 0.3)
	masked, err := MaskField(mask, u)
	require.NoError(t, err)
	assert.Equal(t, 2.0, masked.At(2, 2))
	assert.True(t, math.IsNaN(masked.At(0, 0)))
	// input untouched
	assert.Equal(t, 2.0, u.At(0, 0))
}

func TestEmptyInputsAreRejected(t *testing.T) {
	var none Mask
	var zero core.Field2D

	_, err := IntegrateMasked(zero, none, zero)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
	_, err = MaskedArea(zero, none)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
	_, err = MaskField(none, zero)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
	_, err = MaskedMean(none, zero)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)

	// A grid-less disk mask collapses to the empty mask.
	assert.Zero(t, DiskMask(grid.Grid2D{}, 0, 0, 1).Count())
}

func TestDegenerateAreaOutsideMask(t *testing.T) {
	data := []float64{1, 1, 1, 0}
	areas, err := core.NewField2D(2, 2, data)
	require.NoError(t, err)
	onlyFirst := NewMask(2, 2, func(i, j int) bool { return i == 0 && j == 0 })

	_, err = IntegrateMasked(areas, onlyFirst, areas)
	assert.ErrorIs(t, err, core.ErrDegenerateCell)
	_, err = MaskedArea(areas, onlyFirst)
	assert.ErrorIs(t, err, core.ErrDegenerateCell)

	data[3] = -2
	areas, _ = core.NewField2D(2, 2, data)
	_, err = IntegrateMasked(areas, onlyFirst, areas)
	assert.ErrorIs(t, err, core.ErrDegenerateCell)
}
