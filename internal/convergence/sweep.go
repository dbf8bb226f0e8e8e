// Package convergence sweeps grid resolution and records how the error of a
// numerical procedure against its analytic reference evolves.
package convergence

import (
	"context"
	"math"
	"sync"

	"github.com/san-kum/fieldcalc/internal/core"
)

// Point is the error measured at resolution N.
type Point struct {
	N     int     `json:"n"`
	Error float64 `json:"error"`
}

// Series is an ordered list of points, in the order the resolutions were given.
type Series []Point

func (s Series) Resolutions() []int {
	out := make([]int, len(s))
	for i, p := range s {
		out[i] = p.N
	}
	return out
}

func (s Series) Errors() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Error
	}
	return out
}

// Last returns the point at the finest resolution swept last.
func (s Series) Last() Point {
	if len(s) == 0 {
		return Point{}
	}
	return s[len(s)-1]
}

// ErrorFunc returns the error at resolution n.
type ErrorFunc func(n int) (float64, error)

// Problem is a scalar convergence experiment: a grid and field are built at
// each resolution, then the numeric result is compared to the exact value.
type Problem[G, F any] struct {
	BuildGrid  func(n int) (G, error)
	BuildField func(g G) (F, error)
	Numeric    func(g G, f F) (float64, error)
	Analytic   func(g G) float64
}

// ErrorFunc adapts p to the absolute error |numeric - analytic|.
func (p Problem[G, F]) ErrorFunc() ErrorFunc {
	return func(n int) (float64, error) {
		g, err := p.BuildGrid(n)
		if err != nil {
			return 0, err
		}
		f, err := p.BuildField(g)
		if err != nil {
			return 0, err
		}
		got, err := p.Numeric(g, f)
		if err != nil {
			return 0, err
		}
		return math.Abs(got - p.Analytic(g)), nil
	}
}

// Sweep evaluates p at every resolution in order.
func Sweep[G, F any](resolutions []int, p Problem[G, F]) (Series, error) {
	return SweepFunc(resolutions, p.ErrorFunc())
}

// SweepFunc evaluates fn at every resolution in order and stops at the first
// error, which is returned wrapped with the failing resolution's index.
func SweepFunc(resolutions []int, fn ErrorFunc) (Series, error) {
	if len(resolutions) == 0 {
		return nil, core.Errorf("Sweep", -1, core.ErrEmptySweep, "no resolutions")
	}
	out := make(Series, len(resolutions))
	for i, n := range resolutions {
		e, err := fn(n)
		if err != nil {
			return nil, &core.OpError{Op: "Sweep", Index: i, Wrapped: err}
		}
		out[i] = Point{N: n, Error: e}
	}
	return out, nil
}

// SweepParallel is SweepFunc with up to workers resolutions evaluated at
// once. fn must be safe for concurrent use. The result is ordered as the
// input regardless of completion order.
func SweepParallel(ctx context.Context, resolutions []int, workers int, fn ErrorFunc) (Series, error) {
	if len(resolutions) == 0 {
		return nil, core.Errorf("SweepParallel", -1, core.ErrEmptySweep, "no resolutions")
	}
	if workers < 1 {
		workers = 1
	}

	out := make(Series, len(resolutions))
	errs := make([]error, len(resolutions))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, n := range resolutions {
		wg.Add(1)
		go func(idx, n int) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			e, err := fn(n)
			out[idx] = Point{N: n, Error: e}
			errs[idx] = err
		}(i, n)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, &core.OpError{Op: "SweepParallel", Index: i, Wrapped: err}
		}
	}
	return out, nil
}
