package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/fieldcalc/internal/convergence"
	"github.com/san-kum/fieldcalc/internal/study"
)

// palette cycles through method colours.
var palette = []string{"#00ff00", "#ff6b6b", "#4dabf7", "#ffd43b", "#da77f2", "#63e6be"}

type bounds struct {
	minX, maxX, minY, maxY float64
}

// logPoints maps a series to (log10 N, log10 error), dropping zero errors.
func logPoints(s convergence.Series) [][2]float64 {
	out := make([][2]float64, 0, len(s))
	for _, p := range s {
		if p.Error > 0 && p.N > 0 {
			out = append(out, [2]float64{math.Log10(float64(p.N)), math.Log10(p.Error)})
		}
	}
	return out
}

func fit(all [][][2]float64) (bounds, bool) {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	seen := false
	for _, pts := range all {
		for _, p := range pts {
			b.minX, b.maxX = math.Min(b.minX, p[0]), math.Max(b.maxX, p[0])
			b.minY, b.maxY = math.Min(b.minY, p[1]), math.Max(b.maxY, p[1])
			seen = true
		}
	}
	if !seen {
		return b, false
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b, true
}

// ConvergenceSVG draws every method of res as a line on log-log axes, error
// against resolution. It returns "" when nothing can be plotted.
func ConvergenceSVG(res *study.Result, width, height int) string {
	names := res.MethodNames()
	lines := make([][][2]float64, len(names))
	for i, name := range names {
		lines[i] = logPoints(res.Methods[name])
	}
	b, ok := fit(lines)
	if !ok {
		return ""
	}
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY

	toPx := func(p [2]float64) (float64, float64) {
		x := (p[0] - b.minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-b.minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="8" y="16" fill="#cccccc" font-family="monospace" font-size="12">%s: log10(error) vs log10(N)</text>
`, width, height, width, height, res.Study))

	for i, pts := range lines {
		if len(pts) == 0 {
			continue
		}
		color := palette[i%len(palette)]

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for k, p := range pts {
			x, y := toPx(p)
			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		label := names[i]
		if p, ok := res.Orders[names[i]]; ok {
			label = fmt.Sprintf("%s (p=%.2f)", label, p)
		}
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 34+16*i, color, label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
