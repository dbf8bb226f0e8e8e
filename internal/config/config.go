package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/fieldcalc/internal/metrics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStart  = 2
	DefaultStop   = 100
	DefaultStep   = 1
	DefaultClip   = 0.5
	DefaultMetric = "max"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("fieldcalc: invalid config")

type Config struct {
	Study      string           `yaml:"study"`
	Metric     string           `yaml:"metric"`
	Workers    int              `yaml:"workers"`
	Resolution ResolutionConfig `yaml:"resolution"`
	Depth      DepthConfig      `yaml:"depth"`
	Pipe       PipeConfig       `yaml:"pipe"`
	Vortex     VortexConfig     `yaml:"vortex"`
}

// ResolutionConfig is either an explicit list or a start/stop/step range.
type ResolutionConfig struct {
	Start int   `yaml:"start"`
	Stop  int   `yaml:"stop"`
	Step  int   `yaml:"step"`
	List  []int `yaml:"list,omitempty"`
}

// DepthConfig is the profile Base + Amp*sin(x) integrated over [A, B].
type DepthConfig struct {
	Base float64 `yaml:"base"`
	Amp  float64 `yaml:"amp"`
	A    float64 `yaml:"a"`
	B    float64 `yaml:"b"`
}

type PipeConfig struct {
	Radius float64 `yaml:"radius"`
	DpDx   float64 `yaml:"dpdx"`
	Mu     float64 `yaml:"mu"`
	Clip   float64 `yaml:"clip"`
	// YExtra adds nodes along y so an n-point study runs on n x (n+YExtra).
	YExtra int     `yaml:"y_extra,omitempty"`
}

// VortexConfig places the Taylor-Green vortex on [0, Extent]^2 at time Time.
type VortexConfig struct {
	Nu     float64 `yaml:"nu"`
	Time   float64 `yaml:"time"`
	Extent float64 `yaml:"extent"`
}

func DefaultConfig() *Config {
	return &Config{
		Study:  "depth-uniform",
		Metric: DefaultMetric,
		Resolution: ResolutionConfig{
			Start: DefaultStart,
			Stop:  DefaultStop,
			Step:  DefaultStep,
		},
		Depth: DepthConfig{Base: 5, Amp: 10, A: 0, B: math.Pi},
		Pipe:  PipeConfig{Radius: 0.5, DpDx: -0.1, Mu: 0.001, Clip: DefaultClip},
		Vortex: VortexConfig{
			Nu:     0.1,
			Time:   1,
			Extent: 2 * math.Pi,
		},
	}
}

// ForStudy returns the defaults with a resolution range suited to study.
func ForStudy(study string) *Config {
	cfg := DefaultConfig()
	cfg.Study = study
	switch study {
	case "poiseuille", "poiseuille-clustered", "disk-area":
		cfg.Resolution = ResolutionConfig{Start: 11, Stop: 201, Step: 10}
	case "taylor-green":
		cfg.Resolution = ResolutionConfig{Start: 9, Stop: 129, Step: 8}
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Resolution.List != nil {
		out.Resolution.List = append([]int(nil), c.Resolution.List...)
	}
	return &out
}

// Resolutions expands the resolution settings into the sweep order.
func (c *Config) Resolutions() []int {
	r := c.Resolution
	if len(r.List) > 0 {
		return append([]int(nil), r.List...)
	}
	if r.Step <= 0 || r.Start > r.Stop {
		return nil
	}
	out := make([]int, 0, (r.Stop-r.Start)/r.Step+1)
	for n := r.Start; n <= r.Stop; n += r.Step {
		out = append(out, n)
	}
	return out
}

func (c *Config) Validate() error {
	if c.Study == "" {
		return fmt.Errorf("study name is empty: %w", ErrInvalidConfig)
	}
	res := c.Resolutions()
	if len(res) == 0 {
		return fmt.Errorf("resolution range is empty: %w", ErrInvalidConfig)
	}
	for _, n := range res {
		if n < 2 {
			return fmt.Errorf("resolution %d: need at least 2 nodes: %w", n, ErrInvalidConfig)
		}
	}
	if _, ok := metrics.New(c.Metric); !ok {
		return fmt.Errorf("metric %q (want one of %v): %w", c.Metric, metrics.Names(), ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, ErrInvalidConfig)
	}
	if !(c.Depth.A < c.Depth.B) {
		return fmt.Errorf("depth interval [%g, %g]: %w", c.Depth.A, c.Depth.B, ErrInvalidConfig)
	}
	if !(c.Pipe.Radius > 0) || !(c.Pipe.Mu > 0) {
		return fmt.Errorf("pipe radius and viscosity must be positive: %w", ErrInvalidConfig)
	}
	if !(c.Pipe.Clip > 0 && c.Pipe.Clip < 1) {
		return fmt.Errorf("clip radius %g outside (0, 1): %w", c.Pipe.Clip, ErrInvalidConfig)
	}
	if c.Pipe.YExtra < 0 {
		return fmt.Errorf("pipe y_extra %d is negative: %w", c.Pipe.YExtra, ErrInvalidConfig)
	}
	if c.Vortex.Nu < 0 || !(c.Vortex.Extent > 0) {
		return fmt.Errorf("vortex viscosity must be non-negative and extent positive: %w", ErrInvalidConfig)
	}
	return nil
}
