package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/fieldcalc/internal/optim"
	"github.com/san-kum/fieldcalc/internal/study"
	"github.com/spf13/cobra"
)

// parseParams turns "name=v1,v2" entries into parallel name and value lists.
func parseParams(entries []string) ([]string, [][]float64, error) {
	var names []string
	var ranges [][]float64
	for _, e := range entries {
		name, list, ok := strings.Cut(e, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("bad --param %q (want name=v1,v2,...)", e)
		}
		var values []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad value in --param %q: %w", e, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func tuneStudy(cmd *cobra.Command, args []string) error {
	name := args[0]
	reg := study.NewRegistry()
	if _, ok := reg.Info(name); !ok {
		return fmt.Errorf("%w: %s (available: %v)", study.ErrUnknownStudy, name, reg.Names())
	}

	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}
	names, ranges, err := parseParams(tuneParams)
	if err != nil {
		return err
	}
	for _, n := range names {
		if _, ok := cfg.Param(n); !ok {
			return fmt.Errorf("unknown parameter %q", n)
		}
	}

	obj, err := reg.Objective(cfg, tuneMethod)
	if err != nil {
		return err
	}
	search, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	best, score, trials, err := search.Search(ctx, obj)
	if !quiet() {
		printTrials(names, trials)
	}
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, best[k])
	}
	fmt.Printf("best %s: %s  final error %.3e\n", tuneMethod, strings.Join(parts, " "), score)
	return nil
}

func printTrials(names []string, trials []optim.Trial) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\tFINAL ERROR")
	for _, t := range trials {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", t.Params[n])
		}
		if t.Err != nil {
			fmt.Fprintf(w, "%v\n", t.Err)
			continue
		}
		fmt.Fprintf(w, "%.3e\n", t.Score)
	}
	w.Flush()
	fmt.Println()
}
