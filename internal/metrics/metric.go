// Package metrics accumulates error norms between a numerical result and
// its analytic reference.
package metrics

import (
	"github.com/san-kum/fieldcalc/internal/core"
)

// Metric observes (numeric, exact) pairs one at a time.
type Metric interface {
	Name() string
	Observe(got, want float64)
	Value() float64
	Reset()
}

// New returns the metric registered under name.
func New(name string) (Metric, bool) {
	switch name {
	case "max":
		return NewMaxAbs(), true
	case "rms":
		return NewRMS(), true
	case "mean":
		return NewMeanAbs(), true
	}
	return nil, false
}

// Names lists the accepted metric names.
func Names() []string { return []string{"max", "mean", "rms"} }

// Compare resets m, feeds it every pair and returns the result.
func Compare(m Metric, got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, core.Errorf("metrics.Compare", -1, core.ErrShapeMismatch, "%d values vs %d reference", len(got), len(want))
	}
	m.Reset()
	for i := range got {
		m.Observe(got[i], want[i])
	}
	return m.Value(), nil
}

// CompareFields is Compare for two fields of the same shape.
func CompareFields(m Metric, got, want core.Field2D) (float64, error) {
	if !got.SameShape(want) {
		return 0, core.Errorf("metrics.CompareFields", -1, core.ErrShapeMismatch, "field shapes differ")
	}
	return Compare(m, got.Data(), want.Data())
}
