package convergence_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldcalc/internal/convergence"
	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/grid"
	"github.com/san-kum/fieldcalc/internal/quadrature"
)

func depth(x float64) float64 { return 5 + 10*math.Sin(x) }

func depthProblem(rule quadrature.Rule) convergence.Problem[grid.Grid1D, func(float64) float64] {
	return convergence.Problem[grid.Grid1D, func(float64) float64]{
		BuildGrid: func(n int) (grid.Grid1D, error) { return grid.BuildUniform(0, math.Pi, n) },
		BuildField: func(g grid.Grid1D) (func(float64) float64, error) {
			return depth, nil
		},
		Numeric: func(g grid.Grid1D, f func(float64) float64) (float64, error) {
			return quadrature.IntegrateFunc(f, g, rule)
		},
		Analytic: func(grid.Grid1D) float64 { return 5*math.Pi + 20 },
	}
}

var _ = Describe("Sweep", func() {
	doubling := []int{9, 17, 33, 65, 129}

	It("returns points in resolution order", func() {
		s, err := convergence.Sweep([]int{33, 5, 17}, depthProblem(quadrature.IntervalTrapezoid))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Resolutions()).To(Equal([]int{33, 5, 17}))
		Expect(s.Errors()).To(HaveLen(3))
	})

	It("is a pure function of its inputs", func() {
		p := depthProblem(quadrature.Midpoint)
		a, err := convergence.Sweep(doubling, p)
		Expect(err).NotTo(HaveOccurred())
		b, err := convergence.Sweep(doubling, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(Equal(a))
	})

	DescribeTable("second-order rules on a smooth integrand",
		func(rule quadrature.Rule) {
			s, err := convergence.Sweep(doubling, depthProblem(rule))
			Expect(err).NotTo(HaveOccurred())
			Expect(convergence.IsMostlyDecreasing(s, 0)).To(BeTrue())

			p, err := convergence.EstimateOrder(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(BeNumerically("~", 2, 0.15))
		},
		Entry("interval trapezoid", quadrature.IntervalTrapezoid),
		Entry("node trapezoid", quadrature.NodeTrapezoid),
		Entry("midpoint", quadrature.Midpoint),
	)

	It("shrinks the trapezoid error over n = 2..100", func() {
		s, err := convergence.Sweep(convergence.Range(2, 100, 1), depthProblem(quadrature.IntervalTrapezoid))
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(HaveLen(99))
		Expect(convergence.IsMostlyDecreasing(s, 0.05)).To(BeTrue())
		Expect(s.Last().Error).To(BeNumerically("<", 2e-3))
	})

	It("rejects an empty resolution list", func() {
		_, err := convergence.Sweep(nil, depthProblem(quadrature.Midpoint))
		Expect(errors.Is(err, core.ErrEmptySweep)).To(BeTrue())
	})

	It("reports which resolution failed", func() {
		_, err := convergence.Sweep([]int{5, 1, 9}, depthProblem(quadrature.Midpoint))
		Expect(errors.Is(err, core.ErrInvalidGrid)).To(BeTrue())

		var opErr *core.OpError
		Expect(errors.As(err, &opErr)).To(BeTrue())
		Expect(opErr.Op).To(Equal("Sweep"))
		Expect(opErr.Index).To(Equal(1))
	})
})

var _ = Describe("SweepParallel", func() {
	fn := depthProblem(quadrature.NodeTrapezoid).ErrorFunc()
	resolutions := convergence.Range(3, 60, 3)

	It("matches the sequential sweep exactly", func() {
		want, err := convergence.SweepFunc(resolutions, fn)
		Expect(err).NotTo(HaveOccurred())
		got, err := convergence.SweepParallel(context.Background(), resolutions, 4, fn)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	})

	It("treats a non-positive worker count as one", func() {
		got, err := convergence.SweepParallel(context.Background(), resolutions[:3], 0, fn)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Resolutions()).To(Equal(resolutions[:3]))
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := convergence.SweepParallel(ctx, resolutions, 2, fn)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	It("rejects an empty resolution list", func() {
		_, err := convergence.SweepParallel(context.Background(), []int{}, 2, fn)
		Expect(errors.Is(err, core.ErrEmptySweep)).To(BeTrue())
	})
})

var _ = Describe("order estimates", func() {
	It("recovers an exact power law", func() {
		var s convergence.Series
		for _, n := range []int{10, 20, 40, 80} {
			s = append(s, convergence.Point{N: n, Error: 3 / math.Pow(float64(n), 1.5)})
		}
		p, err := convergence.EstimateOrder(s)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeNumerically("~", 1.5, 1e-9))

		for _, local := range convergence.LocalOrders(s) {
			Expect(local).To(BeNumerically("~", 1.5, 1e-9))
		}
	})

	It("skips zero errors and needs two usable points", func() {
		s := convergence.Series{{N: 4, Error: 0}, {N: 8, Error: 0.1}}
		_, err := convergence.EstimateOrder(s)
		Expect(errors.Is(err, core.ErrEmptySweep)).To(BeTrue())

		Expect(math.IsNaN(convergence.LocalOrders(s)[0])).To(BeTrue())
		Expect(convergence.LocalOrders(s[:1])).To(BeNil())
	})

	It("tolerates isolated increases", func() {
		s := convergence.Series{{2, 1}, {3, 0.5}, {4, 0.6}, {5, 0.2}, {6, 0.1}}
		Expect(convergence.Increases(s)).To(Equal(1))
		Expect(convergence.IsMostlyDecreasing(s, 0.25)).To(BeTrue())
		Expect(convergence.IsMostlyDecreasing(s, 0.2)).To(BeFalse())
		Expect(convergence.IsMostlyDecreasing(s[:1], 1)).To(BeFalse())

		growing := convergence.Series{{2, 0.1}, {3, 0.2}}
		Expect(convergence.IsMostlyDecreasing(growing, 1)).To(BeFalse())
	})

	It("expands ranges inclusively", func() {
		Expect(convergence.Range(2, 10, 4)).To(Equal([]int{2, 6, 10}))
		Expect(convergence.Range(2, 9, 4)).To(Equal([]int{2, 6}))
		Expect(convergence.Range(5, 2, 1)).To(BeNil())
		Expect(convergence.Range(1, 4, 0)).To(BeNil())
		Expect(convergence.Series{}.Last()).To(Equal(convergence.Point{}))
	})
})
