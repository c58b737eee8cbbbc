package sim

import "github.com/san-kum/windsim/internal/aero"

// Initial conditions at index 0. AeroTorque, GenTorque and GenPower seed the
// first step exactly as the reference toolbox does.
type Initial struct {
	RotorRPM   float64
	Pitch      float64
	AeroTorque float64
	GenTorque  float64
	GenPower   float64
}

func DefaultInitial() Initial {
	return Initial{
		RotorRPM:   10,
		Pitch:      0,
		AeroTorque: 1000,
		GenTorque:  1,
		GenPower:   0,
	}
}

// State is the recorded trajectory of one run. Every series has one entry
// per timestep; index 0 holds the initial conditions.
type State struct {
	Turbine string
	Dt      float64
	Aero    aero.Variant

	Time       []float64
	WindSpeed  []float64
	RotorSpeed []float64
	GenSpeed   []float64
	AeroTorque []float64
	GenTorque  []float64
	BladePitch []float64
	GenPower   []float64

	Metrics map[string]float64
}

func newState(n int) *State {
	return &State{
		Time:       make([]float64, 0, n),
		WindSpeed:  make([]float64, 0, n),
		RotorSpeed: make([]float64, 0, n),
		GenSpeed:   make([]float64, 0, n),
		AeroTorque: make([]float64, 0, n),
		GenTorque:  make([]float64, 0, n),
		BladePitch: make([]float64, 0, n),
		GenPower:   make([]float64, 0, n),
		Metrics:    make(map[string]float64),
	}
}

func (s *State) append(x Sample) {
	s.Time = append(s.Time, x.Time)
	s.WindSpeed = append(s.WindSpeed, x.WindSpeed)
	s.RotorSpeed = append(s.RotorSpeed, x.RotorSpeed)
	s.GenSpeed = append(s.GenSpeed, x.GenSpeed)
	s.AeroTorque = append(s.AeroTorque, x.AeroTorque)
	s.GenTorque = append(s.GenTorque, x.GenTorque)
	s.BladePitch = append(s.BladePitch, x.BladePitch)
	s.GenPower = append(s.GenPower, x.GenPower)
}

func (s *State) Len() int { return len(s.Time) }

func (s *State) At(i int) Sample {
	return Sample{
		Index:      i,
		Time:       s.Time[i],
		WindSpeed:  s.WindSpeed[i],
		RotorSpeed: s.RotorSpeed[i],
		GenSpeed:   s.GenSpeed[i],
		AeroTorque: s.AeroTorque[i],
		GenTorque:  s.GenTorque[i],
		BladePitch: s.BladePitch[i],
		GenPower:   s.GenPower[i],
	}
}

// Columns lists the series in a fixed order, paired with their names.
func (s *State) Columns() ([]string, [][]float64) {
	return []string{"time", "wind_speed", "rotor_speed", "gen_speed", "aero_torque", "gen_torque", "blade_pitch", "gen_power"},
		[][]float64{s.Time, s.WindSpeed, s.RotorSpeed, s.GenSpeed, s.AeroTorque, s.GenTorque, s.BladePitch, s.GenPower}
}

// Sample is one row of the trajectory.
type Sample struct {
	Index      int
	Time       float64
	WindSpeed  float64
	RotorSpeed float64
	GenSpeed   float64
	AeroTorque float64
	GenTorque  float64
	BladePitch float64
	GenPower   float64
}

// Controller is the per-step call into a turbine controller.
type Controller interface {
	Call(t, dt, prevPitch, genSpeed, rotorSpeed, windSpeed float64) (genTorque, pitch float64, err error)
	Close() error
}

// Opener acquires a fresh controller for one run.
type Opener func() (Controller, error)

type Metric interface {
	Name() string
	Observe(x Sample)
	Value() float64
	Reset()
}

// MetricFactory builds a new set of metrics for each run so concurrent runs
// never share accumulators.
type MetricFactory func() []Metric
