package core

import (
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"
)

func TestErrorf(t *testing.T) {
	err := Errorf("Integrate", 3, ErrDegenerateCell, "width %g", 0.0)
	if !errors.Is(err, ErrDegenerateCell) {
		t.Fatalf("expected ErrDegenerateCell, got %v", err)
	}
	if errors.Is(err, ErrInvalidGrid) {
		t.Error("unexpected match with ErrInvalidGrid")
	}

	var op *OpError
	if !errors.As(err, &op) {
		t.Fatalf("expected *OpError, got %T", err)
	}
	if op.Op != "Integrate" || op.Index != 3 {
		t.Errorf("got op=%q index=%d", op.Op, op.Index)
	}
	if !strings.Contains(err.Error(), "index 3") || !strings.Contains(err.Error(), "width 0") {
		t.Errorf("message %q", err.Error())
	}
}

func TestErrorfNoIndex(t *testing.T) {
	err := Errorf("Sweep", -1, ErrEmptySweep, "no resolutions")
	if strings.Contains(err.Error(), "index") {
		t.Errorf("message %q should not mention an index", err.Error())
	}
	if !errors.Is(err, ErrEmptySweep) {
		t.Error("expected ErrEmptySweep")
	}
}

func TestNewField2D(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	f, err := NewField2D(2, 3, data)
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 100
	if f.At(0, 0) != 1 {
		t.Error("field should copy its input")
	}
	if f.At(1, 2) != 6 || f.At(0, 1) != 2 {
		t.Errorf("row-major layout broken: %v", f.Data())
	}

	nx, ny := f.Dims()
	if nx != 2 || ny != 3 {
		t.Errorf("dims %dx%d", nx, ny)
	}
	if got := f.Row(1); got[0] != 4 || got[2] != 6 {
		t.Errorf("row %v", got)
	}
	if got := f.Col(2); got[0] != 3 || got[1] != 6 {
		t.Errorf("col %v", got)
	}

	if _, err := NewField2D(2, 2, data); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	if _, err := NewField2D(0, 2, nil); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}

	z, err := NewField2D(2, 2, nil)
	if err != nil || z.At(1, 1) != 0 {
		t.Errorf("zero field: %v %v", z.Data(), err)
	}
}

func TestFieldMapAndDiff(t *testing.T) {
	f := NewField2DFunc(3, 2, func(i, j int) float64 { return float64(i*10 + j) })
	g := f.Map(func(v float64) float64 { return v + 0.5 })

	d, err := f.MaxAbsDiff(g)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d-0.5) > 1e-15 {
		t.Errorf("max diff %g", d)
	}
	if f.At(2, 1) != 21 {
		t.Error("Map must not modify its receiver")
	}

	other := NewField2DFunc(2, 3, func(i, j int) float64 { return 0 })
	if f.SameShape(other) {
		t.Error("3x2 and 2x3 reported as same shape")
	}
	if _, err := f.MaxAbsDiff(other); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestNewVectorField(t *testing.T) {
	u := NewField2DFunc(2, 2, func(i, j int) float64 { return 1 })
	v := NewField2DFunc(2, 2, func(i, j int) float64 { return 2 })
	vf, err := NewVectorField(u, v)
	if err != nil {
		t.Fatal(err)
	}
	if vf.U.At(0, 0) != 1 || vf.V.At(1, 1) != 2 {
		t.Error("components swapped")
	}

	w := NewField2DFunc(3, 2, func(i, j int) float64 { return 0 })
	if _, err := NewVectorField(u, w); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestParallelRowsVisitsEachIndexOnce(t *testing.T) {
	for _, n := range []int{0, 1, 7, 64, 1000} {
		counts := make([]int32, n)
		ParallelRows(n, 8, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&counts[i], 1)
			}
		})
		for i, c := range counts {
			if c != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, c)
			}
		}
	}
}

func TestEmptyField(t *testing.T) {
	f := NewField2DFunc(0, 3, func(i, j int) float64 { return 1 })
	if !f.Empty() {
		t.Fatal("0x3 field should be empty")
	}
	if nx, ny := f.Dims(); nx != 0 || ny != 0 {
		t.Errorf("dims %dx%d", nx, ny)
	}
	if f.Data() != nil {
		t.Errorf("data %v", f.Data())
	}
	if g := f.Map(math.Abs); !g.Empty() {
		t.Error("Map of empty field should be empty")
	}
	if NewField2DFunc(1, 1, func(i, j int) float64 { return 0 }).Empty() {
		t.Error("1x1 field reported empty")
	}
}
