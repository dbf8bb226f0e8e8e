package config

import "sort"

func preset(study string, edit func(c *Config)) *Config {
	c := ForStudy(study)
	edit(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"depth-uniform": {
		"quick": preset("depth-uniform", func(c *Config) {
			c.Resolution = ResolutionConfig{Start: 2, Stop: 20, Step: 1}
		}),
		"doubling": preset("depth-uniform", func(c *Config) {
			c.Resolution = ResolutionConfig{List: []int{3, 5, 9, 17, 33, 65, 129, 257}}
		}),
	},
	"depth-stretched": {
		"quick": preset("depth-stretched", func(c *Config) {
			c.Resolution = ResolutionConfig{Start: 3, Stop: 30, Step: 1}
		}),
		"doubling": preset("depth-stretched", func(c *Config) {
			c.Resolution = ResolutionConfig{List: []int{5, 9, 17, 33, 65, 129, 257}}
		}),
	},
	"poiseuille": {
		"water": preset("poiseuille", func(c *Config) {}),
		"viscous": preset("poiseuille", func(c *Config) {
			c.Pipe.Mu = 0.025
		}),
		"narrow": preset("poiseuille", func(c *Config) {
			c.Pipe.Radius = 0.2
			c.Pipe.DpDx = -0.8
		}),
	},
	"poiseuille-clustered": {
		"water": preset("poiseuille-clustered", func(c *Config) {}),
		"tight": preset("poiseuille-clustered", func(c *Config) {
			c.Pipe.Clip = 0.9
		}),
	},
	"disk-area": {
		"coarse": preset("disk-area", func(c *Config) {
			c.Resolution = ResolutionConfig{Start: 5, Stop: 51, Step: 2}
		}),
		"fine": preset("disk-area", func(c *Config) {
			c.Resolution = ResolutionConfig{List: []int{11, 21, 51, 101, 201, 401}}
		}),
	},
	"taylor-green": {
		"lecture": preset("taylor-green", func(c *Config) {
			c.Resolution = ResolutionConfig{List: []int{10, 20, 40, 50, 80, 160}}
		}),
		"initial": preset("taylor-green", func(c *Config) {
			c.Vortex.Time = 0
		}),
		"rms": preset("taylor-green", func(c *Config) {
			c.Metric = "rms"
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(study, name string) *Config {
	studyPresets, ok := Presets[study]
	if !ok {
		return nil
	}
	cfg, ok := studyPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(study string) []string {
	studyPresets, ok := Presets[study]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(studyPresets))
	for name := range studyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
