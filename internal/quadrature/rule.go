package quadrature

import (
	"sort"

	"github.com/san-kum/fieldcalc/internal/core"
)

// Rule selects a composite quadrature scheme.
type Rule int

const (
	// Midpoint samples each interval at its centre; values has N-1 entries.
	Midpoint Rule = iota
	// LeftEndpoint samples each interval at x[i]; values has N entries and the last is unused.
	LeftEndpoint
	// NodeTrapezoid weights each node by its half-interval node width.
	NodeTrapezoid
	// IntervalTrapezoid sums (x[i+1]-x[i]) * (v[i]+v[i+1])/2.
	IntervalTrapezoid
	// NodeRectangle sums v[i]*h over all N nodes of a uniform grid.
	NodeRectangle
	// Simpson applies the composite 1/3 rule on (possibly non-uniform) nodes.
	Simpson
)

var ruleNames = map[Rule]string{
	Midpoint:          "midpoint",
	LeftEndpoint:      "left-endpoint",
	NodeTrapezoid:     "node-trapezoid",
	IntervalTrapezoid: "interval-trapezoid",
	NodeRectangle:     "node-rectangle",
	Simpson:           "simpson",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "unknown"
}

// IntervalBased reports whether the rule integrates over the N-1 intervals
// rather than weighting the N nodes.
func (r Rule) IntervalBased() bool {
	return r == Midpoint || r == LeftEndpoint || r == IntervalTrapezoid
}

// ParseRule looks a rule up by its String form.
func ParseRule(name string) (Rule, error) {
	for r, n := range ruleNames {
		if n == name {
			return r, nil
		}
	}
	return 0, core.Errorf("ParseRule", -1, core.ErrUnknownRule, "%q (available: %v)", name, RuleNames())
}

// RuleNames lists the registered rule names in sorted order.
func RuleNames() []string {
	names := make([]string, 0, len(ruleNames))
	for _, n := range ruleNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
