package study

import (
	"context"

	"github.com/san-kum/fieldcalc/internal/analytic"
	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/convergence"
	"github.com/san-kum/fieldcalc/internal/grid"
	"github.com/san-kum/fieldcalc/internal/quadrature"
)

type ruleSet []quadrature.Rule

func (rs ruleSet) names() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.String()
	}
	return out
}

var (
	depthUniformRules = ruleSet{
		quadrature.Midpoint,
		quadrature.LeftEndpoint,
		quadrature.NodeRectangle,
		quadrature.NodeTrapezoid,
		quadrature.IntervalTrapezoid,
	}
	depthStretchedRules = ruleSet{
		quadrature.Midpoint,
		quadrature.NodeTrapezoid,
		quadrature.IntervalTrapezoid,
		quadrature.Simpson,
	}
)

type gridBuilder func(a, b float64, n int) (grid.Grid1D, error)

func runDepthUniform(ctx context.Context, cfg *config.Config) (*Result, error) {
	return runDepth(ctx, cfg, depthUniformRules, grid.BuildUniform)
}

func runDepthStretched(ctx context.Context, cfg *config.Config) (*Result, error) {
	return runDepth(ctx, cfg, depthStretchedRules, grid.BuildQuadratic)
}

func runDepth(ctx context.Context, cfg *config.Config, rules ruleSet, build gridBuilder) (*Result, error) {
	profile := analytic.SineDepth{Base: cfg.Depth.Base, Amp: cfg.Depth.Amp}
	a, b := cfg.Depth.A, cfg.Depth.B
	exact := profile.Integral(a, b)

	methods := make(map[string]method, len(rules))
	for _, rule := range rules {
		p := convergence.Problem[grid.Grid1D, func(float64) float64]{
			BuildGrid: func(n int) (grid.Grid1D, error) { return build(a, b, n) },
			BuildField: func(grid.Grid1D) (func(float64) float64, error) {
				return profile.At, nil
			},
			Numeric: func(g grid.Grid1D, f func(float64) float64) (float64, error) {
				return quadrature.IntegrateFunc(f, g, rule)
			},
			Analytic: func(grid.Grid1D) float64 { return exact },
		}
		minN := 2
		if rule == quadrature.Simpson {
			minN = 3
		}
		methods[rule.String()] = method{fn: p.ErrorFunc(), minN: minN}
	}

	series, err := sweepAll(ctx, cfg, methods)
	if err != nil {
		return nil, err
	}
	return &Result{Reference: exact, Methods: series}, nil
}
