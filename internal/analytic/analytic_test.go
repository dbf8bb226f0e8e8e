package analytic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

func TestSineDepthIntegral(t *testing.T) {
	s := DefaultSineDepth()
	assert.InDelta(t, 5*math.Pi+20, s.Integral(0, math.Pi), 1e-12)
	assert.InDelta(t, 35.70796326794897, s.Integral(0, math.Pi), 1e-12)
	assert.InDelta(t, 5.0, s.At(0), 1e-15)
	assert.InDelta(t, 15.0, s.At(math.Pi/2), 1e-12)
	assert.InDelta(t, 0.0, s.Integral(1, 1), 1e-15)
}

func TestPoiseuille(t *testing.T) {
	p := DefaultPoiseuille()
	assert.InDelta(t, 6.25, p.UMax(), 1e-12)
	assert.InDelta(t, 3.125, p.Mean(), 1e-12)
	assert.InDelta(t, math.Pi/4, p.Area(), 1e-12)
	assert.InDelta(t, p.UMax(), p.Velocity(0, 0), 1e-12)
	assert.InDelta(t, 0.0, p.Velocity(0.3, 0.4), 1e-12)
	assert.True(t, p.Inside(0.3, 0.4))
	assert.False(t, p.Inside(0.4, 0.4))
	assert.Less(t, p.Velocity(0.5, 0.5), 0.0)

	viscous := Poiseuille{R: 0.2, DpDx: -0.8, Mu: 0.001}
	assert.InDelta(t, 8.0, viscous.UMax(), 1e-12)
}

func TestTaylorGreenConsistency(t *testing.T) {
	tg := DefaultTaylorGreen()
	pts := [][2]float64{{0.3, 1.1}, {2.0, 0.4}, {4.5, 5.9}}
	for _, p := range pts {
		x, y := p[0], p[1]
		dPsiDx := fd.Derivative(func(s float64) float64 { return tg.Psi(s, y) }, x, &fd.Settings{Formula: fd.Central})
		dPsiDy := fd.Derivative(func(s float64) float64 { return tg.Psi(x, s) }, y, &fd.Settings{Formula: fd.Central})
		assert.InDelta(t, tg.U(x, y), dPsiDy, 1e-6)
		assert.InDelta(t, tg.V(x, y), -dPsiDx, 1e-6)

		dvdx := fd.Derivative(func(s float64) float64 { return tg.V(s, y) }, x, &fd.Settings{Formula: fd.Central})
		dudy := fd.Derivative(func(s float64) float64 { return tg.U(x, s) }, y, &fd.Settings{Formula: fd.Central})
		assert.InDelta(t, tg.Vorticity(x, y), dvdx-dudy, 1e-6)
		assert.InDelta(t, math.Hypot(tg.U(x, y), tg.V(x, y)), tg.Speed(x, y), 1e-15)
	}
	assert.InDelta(t, math.Exp(-0.2), tg.Decay(), 1e-15)
}
