package metrics

import (
	"math"

	"github.com/san-kum/windsim/internal/sim"
)

// MeanPower is the average electrical power over all samples, in W.
type MeanPower struct {
	name    string
	sum     float64
	samples int
}

func NewMeanPower() *MeanPower {
	return &MeanPower{name: "mean_power"}
}

func (m *MeanPower) Name() string { return m.name }

func (m *MeanPower) Observe(x sim.Sample) {
	m.sum += x.GenPower
	m.samples++
}

func (m *MeanPower) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanPower) Reset() {
	m.sum = 0
	m.samples = 0
}

// Energy integrates electrical power over time with the trapezoidal rule, in J.
type Energy struct {
	name      string
	total     float64
	prevTime  float64
	prevPower float64
	samples   int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x sim.Sample) {
	if e.samples > 0 {
		e.total += 0.5 * (x.GenPower + e.prevPower) * (x.Time - e.prevTime)
	}
	e.prevTime = x.Time
	e.prevPower = x.GenPower
	e.samples++
}

func (e *Energy) Value() float64 {
	return e.total
}

func (e *Energy) Reset() {
	e.total = 0
	e.prevTime = 0
	e.prevPower = 0
	e.samples = 0
}

// SpeedDrift is the largest relative departure of rotor speed from its
// initial value.
type SpeedDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewSpeedDrift() *SpeedDrift {
	return &SpeedDrift{name: "speed_drift"}
}

func (d *SpeedDrift) Name() string { return d.name }

func (d *SpeedDrift) Observe(x sim.Sample) {
	if d.samples == 0 {
		d.initial = x.RotorSpeed
	}
	d.samples++

	if d.initial != 0 {
		drift := math.Abs(x.RotorSpeed-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *SpeedDrift) Value() float64 {
	return d.maxDrift
}

func (d *SpeedDrift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}
