package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fieldcalc/internal/core"
)

func TestNorms(t *testing.T) {
	got := []float64{1, 2, 3, 4}
	want := []float64{1, 1, 5, 4}

	tests := []struct {
		metric Metric
		want   float64
	}{
		{NewMaxAbs(), 2},
		{NewMeanAbs(), 0.75},
		{NewRMS(), math.Sqrt(5.0 / 4)},
	}

	for _, tt := range tests {
		t.Run(tt.metric.Name(), func(t *testing.T) {
			v, err := Compare(tt.metric, got, want)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(v-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, v)
			}
		})
	}
}

func TestReset(t *testing.T) {
	for _, name := range Names() {
		m, ok := New(name)
		if !ok {
			t.Fatalf("metric %q not registered", name)
		}
		m.Observe(10, 0)
		m.Reset()
		if m.Value() != 0 {
			t.Errorf("%s: expected 0 after reset, got %f", name, m.Value())
		}
	}
	if _, ok := New("l7"); ok {
		t.Error("unexpected metric l7")
	}
}

func TestCompareReusesMetric(t *testing.T) {
	m := NewMaxAbs()
	if _, err := Compare(m, []float64{100}, []float64{0}); err != nil {
		t.Fatal(err)
	}
	v, err := Compare(m, []float64{1}, []float64{0})
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("expected stale state to be cleared, got %f", v)
	}
}

func TestCompareShapeMismatch(t *testing.T) {
	if _, err := Compare(NewRMS(), []float64{1, 2}, []float64{1}); !errors.Is(err, core.ErrShapeMismatch) {
		t.Errorf("expected shape mismatch, got %v", err)
	}

	a := core.NewField2DFunc(2, 3, func(i, j int) float64 { return 1 })
	b := core.NewField2DFunc(3, 2, func(i, j int) float64 { return 1 })
	if _, err := CompareFields(NewRMS(), a, b); !errors.Is(err, core.ErrShapeMismatch) {
		t.Errorf("expected shape mismatch, got %v", err)
	}
	v, err := CompareFields(NewMaxAbs(), a, a)
	if err != nil || v != 0 {
		t.Errorf("expected 0, nil; got %f, %v", v, err)
	}
}
