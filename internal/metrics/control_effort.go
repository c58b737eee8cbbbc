package metrics

import (
	"math"

	"github.com/san-kum/windsim/internal/sim"
)

// TorqueEffort is the mean absolute generator torque demand.
type TorqueEffort struct {
	name    string
	sum     float64
	samples int
}

func NewTorqueEffort() *TorqueEffort {
	return &TorqueEffort{
		name: "torque_effort",
	}
}

func (c *TorqueEffort) Name() string {
	return c.name
}

func (c *TorqueEffort) Observe(x sim.Sample) {
	c.sum += math.Abs(x.GenTorque)
	c.samples++
}

func (c *TorqueEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *TorqueEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// PitchTravel is the accumulated blade pitch movement in degrees, a proxy
// for actuator duty.
type PitchTravel struct {
	name    string
	total   float64
	prev    float64
	samples int
}

func NewPitchTravel() *PitchTravel {
	return &PitchTravel{name: "pitch_travel"}
}

func (p *PitchTravel) Name() string { return p.name }

func (p *PitchTravel) Observe(x sim.Sample) {
	if p.samples > 0 {
		p.total += math.Abs(x.BladePitch - p.prev)
	}
	p.prev = x.BladePitch
	p.samples++
}

func (p *PitchTravel) Value() float64 { return p.total }

func (p *PitchTravel) Reset() {
	p.total = 0
	p.prev = 0
	p.samples = 0
}
