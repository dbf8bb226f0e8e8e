package metrics

import "math"

type MaxAbs struct {
	name string
	max  float64
}

func NewMaxAbs() *MaxAbs { return &MaxAbs{name: "max"} }

func (m *MaxAbs) Name() string { return m.name }

func (m *MaxAbs) Observe(got, want float64) {
	m.max = math.Max(m.max, math.Abs(got-want))
}

func (m *MaxAbs) Value() float64 { return m.max }

func (m *MaxAbs) Reset() { m.max = 0 }

type RMS struct {
	name    string
	sumSq   float64
	samples int
}

func NewRMS() *RMS { return &RMS{name: "rms"} }

func (r *RMS) Name() string { return r.name }

func (r *RMS) Observe(got, want float64) {
	d := got - want
	r.sumSq += d * d
	r.samples++
}

func (r *RMS) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMS) Reset() {
	r.sumSq = 0
	r.samples = 0
}

type MeanAbs struct {
	name    string
	total   float64
	samples int
}

func NewMeanAbs() *MeanAbs { return &MeanAbs{name: "mean"} }

func (m *MeanAbs) Name() string { return m.name }

func (m *MeanAbs) Observe(got, want float64) {
	m.total += math.Abs(got - want)
	m.samples++
}

func (m *MeanAbs) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanAbs) Reset() {
	m.total = 0
	m.samples = 0
}
