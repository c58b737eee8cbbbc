package metrics

import (
	"math"

	"github.com/san-kum/windsim/internal/sim"
)

// Overspeed is the fraction of samples with rotor speed at or below limit
// (rad/s). 1 means the rotor never exceeded it.
type Overspeed struct {
	name       string
	limit      float64
	violations int
	samples    int
}

func NewOverspeed(limit float64) *Overspeed {
	return &Overspeed{
		name:  "overspeed",
		limit: limit,
	}
}

func (s *Overspeed) Name() string {
	return s.name
}

func (s *Overspeed) Observe(x sim.Sample) {
	s.samples++
	if math.Abs(x.RotorSpeed) > s.limit {
		s.violations++
	}
}

func (s *Overspeed) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Overspeed) Reset() {
	s.violations = 0
	s.samples = 0
}

type PeakRotorSpeed struct {
	peak float64
}

func NewPeakRotorSpeed() *PeakRotorSpeed { return &PeakRotorSpeed{} }

func (p *PeakRotorSpeed) Name() string { return "peak_rotor_speed" }

func (p *PeakRotorSpeed) Observe(x sim.Sample) {
	p.peak = math.Max(p.peak, x.RotorSpeed)
}

func (p *PeakRotorSpeed) Value() float64 { return p.peak }

func (p *PeakRotorSpeed) Reset() { p.peak = 0 }
