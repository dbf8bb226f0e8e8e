package section

import (
	"testing"

	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// channel is a 5x4 section with a V-shaped bed; the deepest column reaches
// z = -3 and carries one faster node at the surface.
func channel(t *testing.T) *CrossSection {
	t.Helper()
	y := []float64{0, 1, 2, 3, 4}
	z := []float64{-3, -2, -1, 0}
	wetFrom := []int{-1, 2, 1, 2, -1}
	u := core.NewField2DFunc(5, 4, func(i, j int) float64 {
		if wetFrom[i] < 0 || j < wetFrom[i] {
			return 0
		}
		if i == 2 && j == 3 {
			return 2
		}
		return 1
	})
	c, err := New(y, z, u)
	require.NoError(t, err)
	return c
}

func TestDepthProfile(t *testing.T) {
	depth, err := channel(t).DepthProfile()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 3, 2, 0}, depth)
}

func TestAnalyze(t *testing.T) {
	s, err := channel(t).Analyze()
	require.NoError(t, err)

	assert.InDelta(t, 7.0, s.Area, 1e-12)
	assert.Equal(t, 7, s.WetNodes)
	assert.InDelta(t, 8.0/7, s.MeanVelocity, 1e-12)
	assert.InDelta(t, 8.0, s.VolumeFlux, 1e-12)
	assert.InDelta(t, s.VolumeFlux, s.VolumeFluxFromMean, 1e-12)
}

func TestWetAtBottomIsRejected(t *testing.T) {
	u := core.NewField2DFunc(2, 3, func(i, j int) float64 { return 1 })
	c, err := New([]float64{0, 1}, []float64{-2, -1, 0}, u)
	require.NoError(t, err)

	_, err = c.DepthProfile()
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
	_, err = c.Analyze()
	assert.Error(t, err)
}

func TestNonUniformSpacing(t *testing.T) {
	u := core.NewField2DFunc(3, 3, func(i, j int) float64 {
		if j == 2 {
			return 1
		}
		return 0
	})
	c, err := New([]float64{0, 1, 2}, []float64{-2, -0.5, 0}, u)
	require.NoError(t, err)

	_, err = c.VolumeFlux()
	assert.ErrorIs(t, err, core.ErrInvalidGrid)
	_, err = c.VolumeFluxFromMean()
	assert.ErrorIs(t, err, core.ErrInvalidGrid)

	// Area only needs the y axis.
	area, err := c.Area()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, area, 1e-12)
}

func TestDrySection(t *testing.T) {
	u := core.NewField2DFunc(3, 3, func(i, j int) float64 { return 0 })
	c, err := New([]float64{0, 1, 2}, []float64{-2, -1, 0}, u)
	require.NoError(t, err)

	area, err := c.Area()
	require.NoError(t, err)
	assert.Equal(t, 0.0, area)

	_, err = c.MeanVelocity()
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestNewValidates(t *testing.T) {
	u := core.NewField2DFunc(3, 3, func(i, j int) float64 { return 1 })

	_, err := New([]float64{0, 2, 1}, []float64{-2, -1, 0}, u)
	assert.ErrorIs(t, err, core.ErrInvalidGrid)

	_, err = New([]float64{0, 1}, []float64{-2, -1, 0}, u)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
}
