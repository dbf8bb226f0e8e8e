package study

import (
	"context"
	"testing"

	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectiveGridSearch(t *testing.T) {
	base := config.ForStudy("depth-uniform")
	base.Resolution = config.ResolutionConfig{List: []int{11, 21}}
	base.Workers = 1

	obj, err := NewRegistry().Objective(base, "interval-trapezoid")
	require.NoError(t, err)

	// A constant profile is integrated exactly by the trapezoid rule.
	g, err := optim.NewGridSearch([]string{"depth.amp"}, [][]float64{{2, 0, 1}})
	require.NoError(t, err)
	best, score, trials, err := g.Search(context.Background(), obj)
	require.NoError(t, err)
	assert.Equal(t, 0.0, best["depth.amp"])
	assert.Less(t, score, 1e-12)
	require.Len(t, trials, 3)
	assert.Greater(t, trials[0].Score, trials[2].Score)

	// The base config is left untouched.
	assert.NotEqual(t, 0.0, base.Depth.Amp)
}

func TestObjectiveRejectsUnknownNames(t *testing.T) {
	reg := NewRegistry()
	base := config.ForStudy("poiseuille")

	_, err := reg.Objective(base, "simpson")
	assert.Error(t, err)

	base.Study = "nope"
	_, err = reg.Objective(base, "flux")
	assert.ErrorIs(t, err, ErrUnknownStudy)

	obj, err := reg.Objective(config.ForStudy("poiseuille"), "flux")
	require.NoError(t, err)
	_, err = obj(context.Background(), map[string]float64{"pipe.nope": 1})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
