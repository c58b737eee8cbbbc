package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/windsim/internal/aero"
	"github.com/san-kum/windsim/internal/rotor"
	"github.com/san-kum/windsim/internal/turbine"
	"github.com/sirupsen/logrus"
)

type Simulator struct {
	params    turbine.Params
	evaluator aero.Evaluator
	surface   *aero.Surface
	open      Opener
	metrics   MetricFactory
	log       *logrus.Entry
}

type Option func(*Simulator)

// WithEvaluator sets the primary performance evaluator. It is probed once per
// run; a failing probe switches that run to the surface.
func WithEvaluator(ev aero.Evaluator) Option {
	return func(s *Simulator) { s.evaluator = ev }
}

func WithSurface(surf *aero.Surface) Option {
	return func(s *Simulator) { s.surface = surf }
}

// WithController sets how each run acquires its controller.
func WithController(open Opener) Option {
	return func(s *Simulator) { s.open = open }
}

func WithMetrics(f MetricFactory) Option {
	return func(s *Simulator) { s.metrics = f }
}

func WithLogger(log *logrus.Entry) Option {
	return func(s *Simulator) { s.log = log }
}

func New(p turbine.Params, opts ...Option) *Simulator {
	s := &Simulator{
		params: p,
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) Params() turbine.Params { return s.params }

// Run simulates the turbine over times with the hub-height wind series. The
// controller is opened after validation and closed before Run returns. On
// error no state is returned.
func (s *Simulator) Run(times, wind []float64, init Initial) (st *State, err error) {
	if err := s.params.Validate(); err != nil {
		return nil, err
	}
	uniform, err := validateInputs(times, wind)
	if err != nil {
		return nil, err
	}
	if s.open == nil {
		return nil, ErrNoController
	}

	n := len(times)
	dt := times[1] - times[0]
	log := s.log.WithFields(logrus.Fields{
		"turbine": s.params.Name,
		"steps":   n,
		"dt":      dt,
	})
	if !uniform {
		log.Warn("time grid is not uniform, integrating with the first interval")
	}

	x0 := Sample{
		Time:       times[0],
		WindSpeed:  wind[0],
		RotorSpeed: turbine.RPMToRadSec(init.RotorRPM),
		AeroTorque: init.AeroTorque,
		GenTorque:  init.GenTorque,
		BladePitch: init.Pitch,
		GenPower:   init.GenPower,
	}
	x0.GenSpeed = x0.RotorSpeed * s.params.GearboxRatio

	probe := aero.Query{WindSpeed: wind[1], RotorSpeed: x0.RotorSpeed, Pitch: x0.BladePitch}
	src, variant, err := aero.Select(s.evaluator, s.surface, s.params.RotorRadius, probe, log)
	if err != nil {
		return nil, &SimulationError{Step: 0, Time: times[0], Wrapped: err}
	}

	ctrl, err := s.open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := ctrl.Close(); cerr != nil {
			if err == nil {
				err = fmt.Errorf("close controller: %w", cerr)
			} else {
				err = errors.Join(err, cerr)
			}
			st = nil
		}
	}()

	log.WithField("aero", variant).Info("running simulation")

	var metrics []Metric
	if s.metrics != nil {
		metrics = s.metrics()
	}
	for _, m := range metrics {
		m.Reset()
	}

	state := newState(n)
	state.Turbine = s.params.Name
	state.Dt = dt
	state.Aero = variant
	state.append(x0)
	for _, m := range metrics {
		m.Observe(x0)
	}

	integ := rotor.NewIntegrator(s.params, dt)
	prev := x0
	for i := 1; i < n; i++ {
		x := Sample{Index: i, Time: times[i], WindSpeed: wind[i]}

		c, err := src.Coefficients(aero.Query{
			WindSpeed:  x.WindSpeed,
			RotorSpeed: prev.RotorSpeed,
			Pitch:      prev.BladePitch,
		})
		if err != nil {
			return nil, &SimulationError{Step: i, Time: x.Time, Wrapped: err}
		}
		x.AeroTorque = rotor.AeroTorque(s.params, c.Cq, x.WindSpeed)
		x.RotorSpeed, x.GenSpeed = integ.Step(prev.RotorSpeed, prev.GenTorque, x.AeroTorque)

		x.GenTorque, x.BladePitch, err = ctrl.Call(x.Time, dt, prev.BladePitch, x.GenSpeed, x.RotorSpeed, x.WindSpeed)
		if err != nil {
			return nil, &SimulationError{Step: i, Time: x.Time, Wrapped: err}
		}
		x.GenPower = rotor.GenPower(s.params, x.GenSpeed, x.GenTorque)

		state.append(x)
		for _, m := range metrics {
			m.Observe(x)
		}
		prev = x
	}

	for _, m := range metrics {
		state.Metrics[m.Name()] = m.Value()
	}
	log.WithField("final_rotor_speed", prev.RotorSpeed).Debug("simulation complete")
	return state, nil
}
