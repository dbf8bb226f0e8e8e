package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/fieldcalc/internal/export"
	"github.com/san-kum/fieldcalc/internal/viz"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTUDY\tPRESET\tTIME\tELAPSED\tMETHODS")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Study,
			p,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Elapsed.Round(1e6),
			strings.Join(run.Methods, ","),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	_, res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if quiet() {
		fmt.Print(viz.Table(res))
		return nil
	}
	fmt.Print(viz.Report(res))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return export.JSON(os.Stdout, meta.Config, res)
	}
	if err := export.JSONFile(outFile, meta.Config, res); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st, err := openStore()
	if err != nil {
		return err
	}
	_, res, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	svg := export.ConvergenceSVG(res, svgWidth, svgHeight)
	if svg == "" {
		return errors.New("nothing to plot: no positive errors in run")
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}
