package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/san-kum/fieldcalc/internal/analytic"
	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/grid"
	"github.com/san-kum/fieldcalc/internal/quadrature"
	"github.com/san-kum/fieldcalc/internal/stencil"
	"github.com/san-kum/fieldcalc/internal/storage"
	"github.com/san-kum/fieldcalc/internal/study"
	"github.com/san-kum/fieldcalc/internal/viz"
	"github.com/spf13/cobra"
)

func gridFromFlags(cmd *cobra.Command) (grid.Grid1D, error) {
	flags := cmd.Flags()
	kind, _ := flags.GetString("grid")
	n, _ := flags.GetInt("n")
	a, _ := flags.GetFloat64("a")
	b, _ := flags.GetFloat64("b")

	switch kind {
	case "uniform":
		return grid.BuildUniform(a, b, n)
	case "clustered":
		c, _ := flags.GetFloat64("clip")
		return grid.BuildClustered(a, b, n, c)
	case "quadratic":
		return grid.BuildQuadratic(a, b, n)
	}
	return grid.Grid1D{}, fmt.Errorf("unknown grid kind %q (uniform, clustered, quadratic)", kind)
}

func integrateDepth(cmd *cobra.Command, args []string) error {
	g, err := gridFromFlags(cmd)
	if err != nil {
		return err
	}

	rules := quadrature.RuleNames()
	if rule != "all" {
		rules = []string{rule}
	}

	d := config.DefaultConfig().Depth
	depth := analytic.SineDepth{Base: d.Base, Amp: d.Amp}
	exact := depth.Integral(g.First(), g.Last())

	fmt.Printf("depth %g + %g sin(x) on [%g, %g], n=%d, exact=%.10g\n\n", d.Base, d.Amp, g.First(), g.Last(), g.Len(), exact)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tVALUE\tABS ERROR")
	for _, name := range rules {
		r, err := quadrature.ParseRule(name)
		if err != nil {
			return err
		}
		v, err := quadrature.IntegrateFunc(depth.At, g, r)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t%v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.10g\t%.3e\n", name, v, math.Abs(v-exact))
	}
	return w.Flush()
}

func showGrid(cmd *cobra.Command, args []string) error {
	g, err := gridFromFlags(cmd)
	if err != nil {
		return err
	}

	widths := g.IntervalWidths()
	nodeW := g.NodeWidths()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "I\tX\tNODE WIDTH\tINTERVAL WIDTH")
	for i, x := range g.Points() {
		iw := "-"
		if i < len(widths) {
			iw = fmt.Sprintf("%.6f", widths[i])
		}
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%s\n", i, x, nodeW[i], iw)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if quiet() {
		return nil
	}
	g2, err := grid.Build2D(g, g)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(viz.MeshPlot(g2, 40, 20))
	return nil
}

func showHeatmap(cmd *cobra.Command, args []string) error {
	n, _ := cmd.Flags().GetInt("n")

	var f core.Field2D
	switch args[0] {
	case "taylor-green":
		vc := config.DefaultConfig().Vortex
		fields, err := study.ReconstructVortex(analytic.TaylorGreen{Nu: vc.Nu, T: vc.Time}, vc.Extent, n)
		if err != nil {
			return err
		}
		switch component {
		case "u":
			f = fields.Velocity.U
		case "v":
			f = fields.Velocity.V
		case "speed":
			f = fields.Speed
		case "vorticity":
			f = fields.Vorticity
		default:
			return fmt.Errorf("unknown component %q (u, v, speed, vorticity)", component)
		}
	case "poiseuille":
		p := analytic.DefaultPoiseuille()
		axis, err := grid.BuildUniform(-p.R, p.R, n)
		if err != nil {
			return err
		}
		g, err := grid.Build2D(axis, axis)
		if err != nil {
			return err
		}
		f, err = quadrature.MaskField(quadrature.NodeDiskMask(g, 0, 0, p.R), g.Sample(p.Velocity))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown field %q (taylor-green, poiseuille)", args[0])
	}

	fmt.Print(viz.Heatmap(f, 64, 32))
	return nil
}

func analyzeSection(cmd *cobra.Command, args []string) error {
	c, err := storage.LoadSection(args[0])
	if err != nil {
		return err
	}
	s, err := c.Analyze()
	if err != nil {
		return err
	}
	fmt.Println(viz.SectionReport(s))

	if quiet() {
		return nil
	}
	wet, err := quadrature.MaskField(c.WetMask(), c.U)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(viz.Heatmap(wet, 64, 16))
	return nil
}

func deriveDepth(cmd *cobra.Command, args []string) error {
	g, err := gridFromFlags(cmd)
	if err != nil {
		return err
	}
	d := config.DefaultConfig().Depth
	depth := analytic.SineDepth{Base: d.Base, Amp: d.Amp}
	values := g.Sample(depth.At)
	sp := stencil.FromGrid(g)

	direct, err := stencil.Derivative1D(values, sp)
	if err != nil {
		return err
	}
	op, err := stencil.NewOperator(g.Len(), sp)
	if err != nil {
		return err
	}
	viaMatrix, err := op.Apply(values)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "I\tX\tSTENCIL\tDF/DX\tEXACT\tABS ERROR")
	worst, interior := 0.0, 0.0
	for i, x := range g.Points() {
		exact := depth.Derivative(x)
		e := math.Abs(direct[i] - exact)
		worst = math.Max(worst, e)
		if i > 0 && i < g.Len()-1 {
			interior = math.Max(interior, e)
		}
		if !quiet() {
			fmt.Fprintf(w, "%d\t%.6f\t%s\t%.8f\t%.8f\t%.3e\n", i, x, stencil.At(i, g.Len()).Kind, direct[i], exact, e)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	agree := 0.0
	for i := range direct {
		agree = math.Max(agree, math.Abs(direct[i]-viaMatrix[i]))
	}
	fmt.Printf("\nmax error %.3e (interior %.3e), operator %dx%d with %d non-zeros, |stencil - operator| = %.1e\n",
		worst, interior, op.Size(), op.Size(), op.NNZ(), agree)
	return nil
}
