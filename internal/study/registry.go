// Package study wires grids, quadrature, stencils and analytic references
// into named convergence studies.
package study

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/convergence"
)

// ErrUnknownStudy is returned for names that are not registered.
var ErrUnknownStudy = errors.New("fieldcalc: unknown study")

// Result holds one error series per method compared in a study.
type Result struct {
	Study     string                        `json:"study"`
	Reference float64                       `json:"reference"`
	Methods   map[string]convergence.Series `json:"methods"`
	Orders    map[string]float64            `json:"orders,omitempty"`
	Elapsed   time.Duration                 `json:"elapsed"`
}

// MethodNames returns the method keys in sorted order.
func (r *Result) MethodNames() []string {
	names := make([]string, 0, len(r.Methods))
	for name := range r.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runner executes a study for a validated config.
type Runner func(ctx context.Context, cfg *config.Config) (*Result, error)

type Info struct {
	Name        string
	Description string
	Methods     []string
}

type entry struct {
	info Info
	run  Runner
}

type Registry struct {
	studies map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{studies: make(map[string]entry)}

	r.register(Info{
		Name:        "depth-uniform",
		Description: "integral of Base + Amp sin(x) with every 1-D rule on uniform grids",
		Methods:     depthUniformRules.names(),
	}, runDepthUniform)
	r.register(Info{
		Name:        "depth-stretched",
		Description: "the depth integral on grids stretched towards the left end",
		Methods:     depthStretchedRules.names(),
	}, runDepthStretched)
	r.register(Info{
		Name:        "poiseuille",
		Description: "mean Hagen-Poiseuille velocity over a pipe section on uniform grids",
		Methods:     pipeMethods,
	}, runPoiseuille(false))
	r.register(Info{
		Name:        "poiseuille-clustered",
		Description: "mean Hagen-Poiseuille velocity on tanh-clustered grids",
		Methods:     pipeMethods,
	}, runPoiseuille(true))
	r.register(Info{
		Name:        "disk-area",
		Description: "masked area of the pipe section against pi R^2",
		Methods:     []string{"clustered", "uniform"},
	}, runDiskArea)
	r.register(Info{
		Name:        "taylor-green",
		Description: "velocity and vorticity from the Taylor-Green stream function",
		Methods:     vortexMethods,
	}, runTaylorGreen)

	return r
}

func (r *Registry) register(info Info, run Runner) {
	r.studies[info.Name] = entry{info: info, run: run}
}

func (r *Registry) Get(name string) (Runner, error) {
	e, ok := r.studies[name]
	if !ok {
		return nil, fmt.Errorf("%s (available: %v): %w", name, r.Names(), ErrUnknownStudy)
	}
	return e.run, nil
}

func (r *Registry) Info(name string) (Info, bool) {
	e, ok := r.studies[name]
	return e.info, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.studies))
	for name := range r.studies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.studies))
	for _, name := range r.Names() {
		out = append(out, r.studies[name].info)
	}
	return out
}

// Run validates cfg, runs the study it names and fills in the fitted
// convergence order of each method.
func (r *Registry) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	run, err := r.Get(cfg.Study)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := run(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("study %s: %w", cfg.Study, err)
	}
	res.Study = cfg.Study
	res.Elapsed = time.Since(start)

	res.Orders = make(map[string]float64, len(res.Methods))
	for name, s := range res.Methods {
		if p, err := convergence.EstimateOrder(s); err == nil {
			res.Orders[name] = p
		}
	}
	return res, nil
}

func workers(cfg *config.Config) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// method is one numerical procedure compared within a study. Resolutions
// below minN are skipped for it.
type method struct {
	fn   convergence.ErrorFunc
	minN int
}

// sweepAll runs one parallel sweep per method.
func sweepAll(ctx context.Context, cfg *config.Config, methods map[string]method) (map[string]convergence.Series, error) {
	out := make(map[string]convergence.Series, len(methods))
	for name, m := range methods {
		var res []int
		for _, n := range cfg.Resolutions() {
			if n >= m.minN {
				res = append(res, n)
			}
		}
		if len(res) == 0 {
			continue
		}
		s, err := convergence.SweepParallel(ctx, res, workers(cfg), m.fn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}
