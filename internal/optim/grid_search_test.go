package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSearchFindsMinimum(t *testing.T) {
	g, err := NewGridSearch([]string{"x", "y"}, [][]float64{{-1, 0, 1, 2}, {0, 3}})
	require.NoError(t, err)

	obj := func(ctx context.Context, p map[string]float64) (float64, error) {
		return math.Pow(p["x"]-1, 2) + math.Pow(p["y"]-3, 2), nil
	}
	best, score, trials, err := g.Search(context.Background(), obj)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"x": 1, "y": 3}, best)
	assert.Zero(t, score)
	assert.Len(t, trials, 8)
	assert.Equal(t, map[string]float64{"x": -1, "y": 0}, trials[0].Params)
}

func TestGridSearchSkipsFailures(t *testing.T) {
	g, err := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})
	require.NoError(t, err)

	bad := errors.New("bad")
	obj := func(ctx context.Context, p map[string]float64) (float64, error) {
		switch p["x"] {
		case 1:
			return 0, bad
		case 2:
			return math.NaN(), nil
		}
		return 5, nil
	}
	best, score, trials, err := g.Search(context.Background(), obj)
	require.NoError(t, err)
	assert.Equal(t, 3.0, best["x"])
	assert.Equal(t, 5.0, score)
	require.Len(t, trials, 3)
	assert.ErrorIs(t, trials[0].Err, bad)

	_, _, _, err = g.Search(context.Background(), func(context.Context, map[string]float64) (float64, error) {
		return 0, bad
	})
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestGridSearchCancelled(t *testing.T) {
	g, err := NewGridSearch([]string{"x"}, [][]float64{{1, 2}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err = g.Search(ctx, func(context.Context, map[string]float64) (float64, error) {
		t.Fatal("objective should not run")
		return 0, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGridSearchValidates(t *testing.T) {
	_, err := NewGridSearch([]string{"x"}, nil)
	assert.Error(t, err)
	_, err = NewGridSearch([]string{"x"}, [][]float64{{}})
	assert.Error(t, err)
}
