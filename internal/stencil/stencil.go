// Package stencil differentiates sampled fields with boundary-aware
// finite-difference stencils and derives velocity and vorticity from a
// stream function.
//
// Every node picks one of three stencils:
//
//   - [Forward] at the first node: (f[1]-f[0]) / h[0]
//   - [Backward] at the last node: (f[N-1]-f[N-2]) / h[N-2]
//   - [Central] elsewhere: (f[i+1]-f[i-1]) / (h[i-1]+h[i])
//
// Only in-bounds neighbours are read; nothing is extrapolated past the grid.
package stencil

import "fmt"

// Kind is the finite-difference stencil used at a node.
type Kind int

const (
	Forward Kind = iota
	Backward
	Central
)

func (k Kind) String() string {
	switch k {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Central:
		return "central"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Stencil is the two-point difference chosen for node I: the derivative is
// (f[Hi]-f[Lo]) divided by the distance from node Lo to node Hi.
type Stencil struct {
	Kind   Kind
	I      int
	Lo, Hi int
}

// Select picks the stencil kind for node i on an axis of n >= 2 nodes.
func Select(i, n int) Kind {
	switch i {
	case 0:
		return Forward
	case n - 1:
		return Backward
	default:
		return Central
	}
}

// At returns the full stencil for node i on an axis of n >= 2 nodes.
func At(i, n int) Stencil {
	k := Select(i, n)
	switch k {
	case Forward:
		return Stencil{Kind: k, I: i, Lo: 0, Hi: 1}
	case Backward:
		return Stencil{Kind: k, I: i, Lo: n - 2, Hi: n - 1}
	default:
		return Stencil{Kind: k, I: i, Lo: i - 1, Hi: i + 1}
	}
}

// Order is the formal truncation order of the stencil on a smooth field.
func (s Stencil) Order() int {
	if s.Kind == Central {
		return 2
	}
	return 1
}
