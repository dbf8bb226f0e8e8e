package convergence

import (
	"math"

	"github.com/san-kum/fieldcalc/internal/core"
	"gonum.org/v1/gonum/stat"
)

// EstimateOrder fits log(err) = c - p*log(N) by least squares and returns p.
// Points with zero error carry no slope information and are skipped.
func EstimateOrder(s Series) (float64, error) {
	var xs, ys []float64
	for _, p := range s {
		if p.Error > 0 && p.N > 0 {
			xs = append(xs, math.Log(float64(p.N)))
			ys = append(ys, math.Log(p.Error))
		}
	}
	if len(xs) < 2 {
		return 0, core.Errorf("EstimateOrder", -1, core.ErrEmptySweep, "need two points with non-zero error, have %d", len(xs))
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return -beta, nil
}

// LocalOrders returns the observed order between each consecutive pair of
// points. Pairs with equal N or a zero error yield NaN.
func LocalOrders(s Series) []float64 {
	if len(s) < 2 {
		return nil
	}
	out := make([]float64, len(s)-1)
	for i := range out {
		a, b := s[i], s[i+1]
		if a.N == b.N || a.Error <= 0 || b.Error <= 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Log(a.Error/b.Error) / math.Log(float64(b.N)/float64(a.N))
	}
	return out
}

// Increases counts the steps where the error grew.
func Increases(s Series) int {
	n := 0
	for i := 1; i < len(s); i++ {
		if s[i].Error > s[i-1].Error {
			n++
		}
	}
	return n
}

// IsMostlyDecreasing reports whether the error shrinks from first to last
// point with at most tolerance (a fraction of the steps) isolated increases.
func IsMostlyDecreasing(s Series, tolerance float64) bool {
	if len(s) < 2 {
		return false
	}
	if s.Last().Error >= s[0].Error {
		return false
	}
	steps := float64(len(s) - 1)
	return float64(Increases(s)) <= tolerance*steps
}

// Range returns the integers start, start+step, ... up to and including stop.
func Range(start, stop, step int) []int {
	if step <= 0 || start > stop {
		return nil
	}
	out := make([]int, 0, (stop-start)/step+1)
	for n := start; n <= stop; n += step {
		out = append(out, n)
	}
	return out
}
