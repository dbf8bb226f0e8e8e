package stencil

import (
	"github.com/james-bowman/sparse"
	"github.com/san-kum/fieldcalc/internal/core"
	"gonum.org/v1/gonum/mat"
)

// Operator is the first-derivative stencil set assembled as a sparse n x n
// matrix, two non-zeros per row.
type Operator struct {
	n int
	m *sparse.CSR
}

// NewOperator assembles the derivative matrix for an axis of n nodes.
func NewOperator(n int, sp Spacing) (*Operator, error) {
	if err := sp.check("NewOperator", n); err != nil {
		return nil, err
	}
	dok := sparse.NewDOK(n, n)
	for i := 0; i < n; i++ {
		s := At(i, n)
		inv := 1 / sp.distance(s.Lo, s.Hi)
		dok.Set(i, s.Hi, inv)
		dok.Set(i, s.Lo, -inv)
	}
	return &Operator{n: n, m: dok.ToCSR()}, nil
}

// Size is the number of nodes the operator acts on.
func (o *Operator) Size() int { return o.n }

// NNZ is the number of stored coefficients.
func (o *Operator) NNZ() int { return len(o.m.RawMatrix().Data) }

// Matrix exposes the operator as a gonum matrix.
func (o *Operator) Matrix() mat.Matrix { return o.m }

// Apply returns D*values.
func (o *Operator) Apply(values []float64) ([]float64, error) {
	if len(values) != o.n {
		return nil, core.Errorf("Operator.Apply", -1, core.ErrShapeMismatch, "%d values for %d nodes", len(values), o.n)
	}
	var out mat.VecDense
	out.MulVec(o.m, mat.NewVecDense(o.n, append([]float64(nil), values...)))
	return out.RawVector().Data, nil
}
