package study

import (
	"context"
	"math"

	"github.com/san-kum/fieldcalc/internal/analytic"
	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/grid"
	"github.com/san-kum/fieldcalc/internal/quadrature"
)

var pipeMethods = []string{"area-weighted", "flux", "naive"}

func pipeFlow(cfg *config.Config) analytic.Poiseuille {
	return analytic.Poiseuille{R: cfg.Pipe.Radius, DpDx: cfg.Pipe.DpDx, Mu: cfg.Pipe.Mu}
}

// pipeGrid covers [-R, R]^2 with n nodes along x and n+YExtra along y.
func pipeGrid(cfg *config.Config, n int, clustered bool) (grid.Grid2D, error) {
	r := cfg.Pipe.Radius
	build := func(m int) (grid.Grid1D, error) {
		if clustered {
			return grid.BuildClustered(-r, r, m, cfg.Pipe.Clip)
		}
		return grid.BuildUniform(-r, r, m)
	}
	x, err := build(n)
	if err != nil {
		return grid.Grid2D{}, err
	}
	y := x
	if cfg.Pipe.YExtra > 0 {
		if y, err = build(n + cfg.Pipe.YExtra); err != nil {
			return grid.Grid2D{}, err
		}
	}
	return grid.Build2D(x, y)
}

// pipeEstimates computes the three estimates of the section-averaged
// velocity or flux at resolution n.
type pipeEstimates struct {
	naive, weighted, flux float64
}

func estimatePipe(cfg *config.Config, n int, clustered bool) (pipeEstimates, error) {
	p := pipeFlow(cfg)
	g, err := pipeGrid(cfg, n, clustered)
	if err != nil {
		return pipeEstimates{}, err
	}
	u := g.Sample(p.Velocity)

	naive, err := quadrature.MaskedMean(quadrature.NodeDiskMask(g, 0, 0, p.R), u)
	if err != nil {
		return pipeEstimates{}, err
	}

	areas, err := quadrature.CellAreas(g)
	if err != nil {
		return pipeEstimates{}, err
	}
	cells, err := quadrature.LowerLeft(u)
	if err != nil {
		return pipeEstimates{}, err
	}
	mask := quadrature.DiskMask(g, 0, 0, p.R)
	flux, err := quadrature.IntegrateMasked(areas, mask, cells)
	if err != nil {
		return pipeEstimates{}, err
	}
	weighted, err := quadrature.AreaWeightedMean(areas, mask, cells)
	if err != nil {
		return pipeEstimates{}, err
	}
	return pipeEstimates{naive: naive, weighted: weighted, flux: flux}, nil
}

func runPoiseuille(clustered bool) Runner {
	return func(ctx context.Context, cfg *config.Config) (*Result, error) {
		p := pipeFlow(cfg)
		pick := func(get func(pipeEstimates) float64, exact float64) method {
			return method{minN: 2, fn: func(n int) (float64, error) {
				est, err := estimatePipe(cfg, n, clustered)
				if err != nil {
					return 0, err
				}
				return math.Abs(get(est) - exact), nil
			}}
		}

		series, err := sweepAll(ctx, cfg, map[string]method{
			"naive":         pick(func(e pipeEstimates) float64 { return e.naive }, p.Mean()),
			"area-weighted": pick(func(e pipeEstimates) float64 { return e.weighted }, p.Mean()),
			"flux":          pick(func(e pipeEstimates) float64 { return e.flux }, p.Flux()),
		})
		if err != nil {
			return nil, err
		}
		return &Result{Reference: p.Mean(), Methods: series}, nil
	}
}

func runDiskArea(ctx context.Context, cfg *config.Config) (*Result, error) {
	r := cfg.Pipe.Radius
	exact := math.Pi * r * r

	area := func(clustered bool) method {
		return method{minN: 2, fn: func(n int) (float64, error) {
			g, err := pipeGrid(cfg, n, clustered)
			if err != nil {
				return 0, err
			}
			areas, err := quadrature.CellAreas(g)
			if err != nil {
				return 0, err
			}
			got, err := quadrature.MaskedArea(areas, quadrature.DiskMask(g, 0, 0, r))
			if err != nil {
				return 0, err
			}
			return math.Abs(got - exact), nil
		}}
	}

	series, err := sweepAll(ctx, cfg, map[string]method{
		"uniform":   area(false),
		"clustered": area(true),
	})
	if err != nil {
		return nil, err
	}
	return &Result{Reference: exact, Methods: series}, nil
}
