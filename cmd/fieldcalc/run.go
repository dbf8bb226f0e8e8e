package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/profile"
	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/study"
	"github.com/san-kum/fieldcalc/internal/tui"
	"github.com/san-kum/fieldcalc/internal/viz"
	"github.com/spf13/cobra"
)

func runStudy(cmd *cobra.Command, args []string) error {
	name := args[0]

	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q (cpu, mem)", profileMode)
	}

	reg := study.NewRegistry()
	if _, ok := reg.Info(name); !ok {
		return fmt.Errorf("%w: %s (available: %v)", study.ErrUnknownStudy, name, reg.Names())
	}

	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	status := tui.NewLiveStatus(os.Stderr, "running "+name, 10)
	if !quiet() {
		status.Start()
	}
	res, err := reg.Run(ctx, cfg)
	status.Stop()
	if err != nil {
		return err
	}

	if quiet() {
		fmt.Print(viz.Table(res))
	} else {
		fmt.Print(viz.Report(res))
	}

	if save {
		st, err := openStore()
		if err != nil {
			return err
		}
		id, err := st.Save(preset, cfg, res)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s\n", id)
	}
	return nil
}

// resolveConfig layers the study defaults, the preset, the config file and
// finally any flags the user set explicitly.
func resolveConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg := config.ForStudy(name)

	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.Study = name

	flags := cmd.Flags()
	if flags.Changed("metric") {
		cfg.Metric = metric
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("n") {
		cfg.Resolution = config.ResolutionConfig{List: resolutions}
	} else if flags.Changed("start") || flags.Changed("stop") || flags.Changed("step") {
		r := cfg.Resolution
		r.List = nil
		if flags.Changed("start") {
			r.Start = start
		}
		if flags.Changed("stop") {
			r.Stop = stop
		}
		if flags.Changed("step") {
			r.Step = step
		}
		cfg.Resolution = r
	}
	return cfg, cfg.Validate()
}

func listStudies(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STUDY\tMETHODS\tDESCRIPTION")
	for _, info := range study.NewRegistry().List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, strings.Join(info.Methods, ","), info.Description)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	name := args[0]
	names := config.ListPresets(name)
	if len(names) == 0 {
		fmt.Printf("no presets for %s\n", name)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMETRIC\tRESOLUTIONS")
	for _, p := range names {
		cfg := config.GetPreset(name, p)
		fmt.Fprintf(w, "%s\t%s\t%s\n", p, cfg.Metric, span(cfg.Resolutions()))
	}
	return w.Flush()
}

func span(n []int) string {
	switch len(n) {
	case 0:
		return "-"
	case 1:
		return fmt.Sprint(n[0])
	}
	return fmt.Sprintf("%d..%d (%d)", n[0], n[len(n)-1], len(n))
}
