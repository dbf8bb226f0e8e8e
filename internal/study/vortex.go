package study

import (
	"context"
	"fmt"

	"github.com/san-kum/fieldcalc/internal/analytic"
	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/grid"
	"github.com/san-kum/fieldcalc/internal/metrics"
	"github.com/san-kum/fieldcalc/internal/stencil"
)

var vortexMethods = []string{"speed", "u", "v", "vorticity"}

// VortexFields are the fields recovered from a sampled stream function.
type VortexFields struct {
	Grid      grid.Grid2D
	Velocity  core.VectorField
	Vorticity core.Field2D
	Speed     core.Field2D
}

// ReconstructVortex samples the Taylor-Green stream function on an n x n
// grid over [0, extent]^2 and differentiates it.
func ReconstructVortex(tg analytic.TaylorGreen, extent float64, n int) (*VortexFields, error) {
	axis, err := grid.BuildUniform(0, extent, n)
	if err != nil {
		return nil, err
	}
	g, err := grid.Build2D(axis, axis)
	if err != nil {
		return nil, err
	}
	sp := stencil.FromGrid(axis)

	psi := g.Sample(tg.Psi)
	vel, err := stencil.VelocityFromStreamFunction(psi, sp, sp)
	if err != nil {
		return nil, err
	}
	w, err := stencil.Vorticity(vel.U, vel.V, sp, sp)
	if err != nil {
		return nil, err
	}
	speed, err := stencil.Magnitude(vel.U, vel.V)
	if err != nil {
		return nil, err
	}
	return &VortexFields{Grid: g, Velocity: vel, Vorticity: w, Speed: speed}, nil
}

// vortexErrors measures every reconstructed field against the exact one.
func vortexErrors(cfg *config.Config, n int) (map[string]float64, error) {
	tg := analytic.TaylorGreen{Nu: cfg.Vortex.Nu, T: cfg.Vortex.Time}
	f, err := ReconstructVortex(tg, cfg.Vortex.Extent, n)
	if err != nil {
		return nil, err
	}
	m, ok := metrics.New(cfg.Metric)
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", cfg.Metric)
	}

	pairs := map[string][2]core.Field2D{
		"u":         {f.Velocity.U, f.Grid.Sample(tg.U)},
		"v":         {f.Velocity.V, f.Grid.Sample(tg.V)},
		"vorticity": {f.Vorticity, f.Grid.Sample(tg.Vorticity)},
		"speed":     {f.Speed, f.Grid.Sample(tg.Speed)},
	}
	out := make(map[string]float64, len(pairs))
	for name, p := range pairs {
		e, err := metrics.CompareFields(m, p[0], p[1])
		if err != nil {
			return nil, err
		}
		out[name] = e
	}
	return out, nil
}

func runTaylorGreen(ctx context.Context, cfg *config.Config) (*Result, error) {
	tg := analytic.TaylorGreen{Nu: cfg.Vortex.Nu, T: cfg.Vortex.Time}

	methods := make(map[string]method, len(vortexMethods))
	for _, name := range vortexMethods {
		methods[name] = method{minN: 2, fn: func(n int) (float64, error) {
			errs, err := vortexErrors(cfg, n)
			if err != nil {
				return 0, err
			}
			return errs[name], nil
		}}
	}

	series, err := sweepAll(ctx, cfg, methods)
	if err != nil {
		return nil, err
	}
	return &Result{Reference: 2 * tg.Decay(), Methods: series}, nil
}
