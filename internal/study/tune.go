package study

import (
	"context"
	"fmt"
	"slices"

	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/optim"
)

// Objective scores a parameter set by the error of method at the finest
// resolution of base. Parameters use config dotted names, e.g. "pipe.clip".
func (r *Registry) Objective(base *config.Config, method string) (optim.Objective, error) {
	info, ok := r.Info(base.Study)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStudy, base.Study)
	}
	if !slices.Contains(info.Methods, method) {
		return nil, fmt.Errorf("study %s has no method %q (want one of %v)", base.Study, method, info.Methods)
	}

	return func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := base.Clone()
		for name, v := range params {
			if err := cfg.SetParam(name, v); err != nil {
				return 0, err
			}
		}
		res, err := r.Run(ctx, cfg)
		if err != nil {
			return 0, err
		}
		return res.Methods[method].Last().Error, nil
	}, nil
}
