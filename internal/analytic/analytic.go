// Package analytic holds closed-form reference solutions used to measure
// discretisation error.
package analytic

import "math"

// SineDepth is the channel depth profile f(x) = Base + Amp*sin(x).
type SineDepth struct {
	Base float64
	Amp  float64
}

// DefaultSineDepth is the 5 + 10 sin(x) profile.
func DefaultSineDepth() SineDepth {
	return SineDepth{Base: 5, Amp: 10}
}

func (s SineDepth) At(x float64) float64 {
	return s.Base + s.Amp*math.Sin(x)
}

// Integral is the exact integral of the profile over [a, b].
func (s SineDepth) Integral(a, b float64) float64 {
	return s.Base*(b-a) + s.Amp*(math.Cos(a)-math.Cos(b))
}

func (s SineDepth) Derivative(x float64) float64 {
	return s.Amp * math.Cos(x)
}

// Poiseuille is laminar Hagen-Poiseuille flow in a circular pipe of radius R
// centred on the origin.
type Poiseuille struct {
	R    float64 // pipe radius [m]
	DpDx float64 // pressure gradient [Pa/m]
	Mu   float64 // dynamic viscosity [Pa s]
}

// DefaultPoiseuille is water at about 20C in a 0.5 m pipe.
func DefaultPoiseuille() Poiseuille {
	return Poiseuille{R: 0.5, DpDx: -0.1, Mu: 0.001}
}

// UMax is the centreline velocity.
func (p Poiseuille) UMax() float64 {
	return -p.DpDx * p.R * p.R / (4 * p.Mu)
}

// Mean is the cross-section averaged velocity.
func (p Poiseuille) Mean() float64 {
	return p.UMax() / 2
}

// Area of the pipe cross-section.
func (p Poiseuille) Area() float64 {
	return math.Pi * p.R * p.R
}

// Flux is the volumetric flow rate through the cross-section.
func (p Poiseuille) Flux() float64 {
	return p.Mean() * p.Area()
}

// Velocity at (x, y). Points outside the pipe return a negative value; the
// formula is not clipped so that callers can mask explicitly.
func (p Poiseuille) Velocity(x, y float64) float64 {
	r := math.Hypot(x, y)
	return p.UMax() * (1 - (r/p.R)*(r/p.R))
}

// Inside reports whether (x, y) lies in the pipe.
func (p Poiseuille) Inside(x, y float64) bool {
	return math.Hypot(x, y) <= p.R
}

// TaylorGreen is the decaying Taylor-Green vortex with viscosity Nu at time T.
type TaylorGreen struct {
	Nu float64
	T  float64
}

func DefaultTaylorGreen() TaylorGreen {
	return TaylorGreen{Nu: 0.1, T: 1}
}

// Decay is the factor exp(-2 Nu T) shared by every component.
func (tg TaylorGreen) Decay() float64 {
	return math.Exp(-2 * tg.Nu * tg.T)
}

// Psi is the stream function.
func (tg TaylorGreen) Psi(x, y float64) float64 {
	return math.Sin(x) * math.Sin(y) * tg.Decay()
}

func (tg TaylorGreen) U(x, y float64) float64 {
	return math.Sin(x) * math.Cos(y) * tg.Decay()
}

func (tg TaylorGreen) V(x, y float64) float64 {
	return -math.Cos(x) * math.Sin(y) * tg.Decay()
}

func (tg TaylorGreen) Vorticity(x, y float64) float64 {
	return 2 * math.Sin(x) * math.Sin(y) * tg.Decay()
}

func (tg TaylorGreen) Speed(x, y float64) float64 {
	return math.Hypot(tg.U(x, y), tg.V(x, y))
}
