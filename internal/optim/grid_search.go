package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrNoCandidate is returned when every parameter combination failed.
var ErrNoCandidate = errors.New("optim: no parameter combination succeeded")

// Objective scores one parameter combination; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

// Trial is one evaluated combination.
type Trial struct {
	Params map[string]float64
	Score  float64
	Err    error
}

// GridSearch evaluates every combination of the given parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d value lists", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: parameter %q has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search returns the best combination and its score together with every
// trial in evaluation order. Failed combinations are recorded and skipped;
// NaN scores never win.
func (g *GridSearch) Search(ctx context.Context, obj Objective) (map[string]float64, float64, []Trial, error) {
	best := math.Inf(1)
	var bestParams map[string]float64
	var trials []Trial

	err := g.searchRecursive(ctx, 0, make(map[string]float64), obj, func(t Trial) {
		trials = append(trials, t)
		if t.Err == nil && t.Score < best {
			best = t.Score
			bestParams = t.Params
		}
	})
	if err != nil {
		return nil, 0, trials, err
	}
	if bestParams == nil {
		return nil, 0, trials, ErrNoCandidate
	}
	return bestParams, best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	obj Objective,
	record func(Trial),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		score, err := obj(ctx, current)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		record(Trial{Params: current, Score: score, Err: err})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, obj, record); err != nil {
			return err
		}
	}
	return nil
}
