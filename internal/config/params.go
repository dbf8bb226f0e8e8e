package config

import (
	"fmt"
	"sort"
)

// params maps a dotted parameter name to the field it sets.
var params = map[string]func(c *Config) *float64{
	"depth.base":    func(c *Config) *float64 { return &c.Depth.Base },
	"depth.amp":     func(c *Config) *float64 { return &c.Depth.Amp },
	"depth.a":       func(c *Config) *float64 { return &c.Depth.A },
	"depth.b":       func(c *Config) *float64 { return &c.Depth.B },
	"pipe.radius":   func(c *Config) *float64 { return &c.Pipe.Radius },
	"pipe.dpdx":     func(c *Config) *float64 { return &c.Pipe.DpDx },
	"pipe.mu":       func(c *Config) *float64 { return &c.Pipe.Mu },
	"pipe.clip":     func(c *Config) *float64 { return &c.Pipe.Clip },
	"vortex.nu":     func(c *Config) *float64 { return &c.Vortex.Nu },
	"vortex.time":   func(c *Config) *float64 { return &c.Vortex.Time },
	"vortex.extent": func(c *Config) *float64 { return &c.Vortex.Extent },
}

// SetParam assigns a numeric parameter by its dotted name, e.g. "pipe.clip".
func (c *Config) SetParam(name string, v float64) error {
	field, ok := params[name]
	if !ok {
		return fmt.Errorf("unknown parameter %q (want one of %v): %w", name, ParamNames(), ErrInvalidConfig)
	}
	*field(c) = v
	return nil
}

// Param reads a numeric parameter by its dotted name.
func (c *Config) Param(name string) (float64, bool) {
	field, ok := params[name]
	if !ok {
		return 0, false
	}
	return *field(c), true
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
