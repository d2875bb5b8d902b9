// Package metrics accumulates per-frame observations over a traced run.
package metrics

import (
	"math"

	"github.com/Zymrael/torchODE/internal/linode"
)

type Metric interface {
	Name() string
	Observe(x linode.State, t float64)
	Value() float64
	Reset()
}

// Stability reports the fraction of observed frames whose elements all stay
// within a magnitude threshold.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(x linode.State, t float64) {
	s.samples++
	for _, v := range x {
		if math.Abs(v) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Peak tracks the largest element magnitude seen over the run.
type Peak struct {
	max float64
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(x linode.State, t float64) {
	if m := x.MaxAbs(); m > p.max {
		p.max = m
	}
}

func (p *Peak) Value() float64 { return p.max }
func (p *Peak) Reset()         { p.max = 0 }

// Drift reports relative norm change between the first and last observed
// frames; zero for a norm-preserving run.
type Drift struct {
	first   float64
	last    float64
	started bool
}

func NewDrift() *Drift { return &Drift{} }

func (d *Drift) Name() string { return "drift" }

func (d *Drift) Observe(x linode.State, t float64) {
	n := x.Norm()
	if !d.started {
		d.first = n
		d.started = true
	}
	d.last = n
}

func (d *Drift) Value() float64 {
	if !d.started || d.first == 0 {
		return 0
	}
	return math.Abs(d.last-d.first) / d.first
}

func (d *Drift) Reset() {
	d.first, d.last = 0, 0
	d.started = false
}
