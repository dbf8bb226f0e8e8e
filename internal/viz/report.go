package viz

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fieldcalc/internal/convergence"
	"github.com/san-kum/fieldcalc/internal/section"
	"github.com/san-kum/fieldcalc/internal/study"
)

var plotColors = []struct {
	name  string
	color asciigraph.AnsiColor
}{
	{"green", asciigraph.Green},
	{"red", asciigraph.Red},
	{"blue", asciigraph.Blue},
	{"yellow", asciigraph.Yellow},
	{"magenta", asciigraph.Magenta},
	{"cyan", asciigraph.Cyan},
}

// Report renders a result as a header, a per-method table and an error plot.
func Report(res *study.Result) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("study: "+res.Study) + "\n")
	b.WriteString(MetricLabel.Render("reference: ") + MetricValue.Render(fmt.Sprintf("%.8g", res.Reference)))
	if res.Elapsed > 0 {
		b.WriteString(MetricLabel.Render("  elapsed: ") + MetricValue.Render(res.Elapsed.String()))
	}
	b.WriteString("\n\n")
	b.WriteString(Table(res))

	if plot := ErrorPlot(res, 70, 12); plot != "" {
		b.WriteString("\n" + plot + "\n")
	}
	return b.String()
}

// Table lists the resolution range, final error, trend and fitted order of
// every method.
func Table(res *study.Result) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tN\tFINAL ERROR\tTREND\tORDER")

	for _, name := range res.MethodNames() {
		s := res.Methods[name]
		if len(s) == 0 {
			continue
		}
		order := "-"
		if p, ok := res.Orders[name]; ok {
			order = OrderStyle(p).Render(fmt.Sprintf("%.2f", p))
		}
		fmt.Fprintf(w, "%s\t%d..%d\t%.3e\t%s\t%s\n",
			name,
			s[0].N,
			s.Last().N,
			s.Last().Error,
			Sparkline(logErrors(s), 16),
			order,
		)
	}
	w.Flush()
	return buf.String()
}

// logErrors returns log10 of the non-zero errors.
func logErrors(s convergence.Series) []float64 {
	out := make([]float64, 0, len(s))
	for _, p := range s {
		if p.Error > 0 {
			out = append(out, math.Log10(p.Error))
		}
	}
	return out
}

// ErrorPlot draws log10(error) of every method against sweep index.
func ErrorPlot(res *study.Result, width, height int) string {
	var (
		data    [][]float64
		colors  []asciigraph.AnsiColor
		legends []string
	)
	for _, name := range res.MethodNames() {
		v := logErrors(res.Methods[name])
		if len(v) == 0 {
			continue
		}
		c := plotColors[len(data)%len(plotColors)]
		data = append(data, v)
		colors = append(colors, c.color)
		legends = append(legends, fmt.Sprintf("%s=%s", c.name, name))
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption("log10(error) by sweep step: "+strings.Join(legends, ", ")),
	)
}

// SectionReport renders the scalar results of a cross-section analysis.
func SectionReport(s section.Summary) string {
	rows := []struct {
		label string
		value float64
	}{
		{"area", s.Area},
		{"mean velocity", s.MeanVelocity},
		{"volume flux", s.VolumeFlux},
		{"volume flux (mean x area)", s.VolumeFluxFromMean},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", MetricLabel.Render(fmt.Sprintf("%-26s", r.label+":")), MetricValue.Render(fmt.Sprintf("%.4f", r.value))))
	}
	b.WriteString(fmt.Sprintf("%s %d\n", MetricLabel.Render(fmt.Sprintf("%-26s", "wet nodes:")), s.WetNodes))
	if len(s.Depth) > 1 {
		b.WriteString("\n" + asciigraph.Plot(negate(s.Depth),
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("bed profile (-depth) across y"),
		) + "\n")
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func negate(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = -x
	}
	return out
}
