package config

import (
	"fmt"

	"github.com/san-kum/windsim/internal/aero"
	"github.com/san-kum/windsim/internal/control"
	"github.com/san-kum/windsim/internal/discon"
	"github.com/san-kum/windsim/internal/sim"
	"github.com/san-kum/windsim/internal/turbine"
	"github.com/sirupsen/logrus"
)

func (c ControllerConfig) bridgeOptions() discon.Options {
	return discon.Options{
		ParamFile: c.ParamFile,
		OutName:   c.OutName,
		Symbol:    c.Symbol,
	}
}

// Opener returns a factory that builds a fresh bridge and controller per run.
func (c ControllerConfig) Opener() (sim.Opener, error) {
	opts := c.bridgeOptions()
	switch c.Type {
	case "baseline":
		if err := c.Baseline.Validate(); err != nil {
			return nil, err
		}
		gains := c.Baseline
		return func() (sim.Controller, error) {
			lib, err := control.NewBaseline(gains)
			if err != nil {
				return nil, err
			}
			return discon.NewBridge(lib, opts)
		}, nil
	case "hold":
		hold := c.Hold
		return func() (sim.Controller, error) {
			return discon.NewBridge(control.NewHold(hold.Torque, hold.Pitch), opts)
		}, nil
	case "native":
		path := c.Library
		return func() (sim.Controller, error) {
			return discon.Dial(path, opts)
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown controller type %q", ErrInvalidConfig, c.Type)
}

// Surface loads the configured rotor performance file, or the empirical
// surface when none is set.
func (a AeroConfig) Surface() (*aero.Surface, error) {
	if a.PerformanceFile == "" {
		return aero.EmpiricalSurface()
	}
	tbl, err := aero.ReadPerformanceFile(a.PerformanceFile)
	if err != nil {
		return nil, fmt.Errorf("load performance file: %w", err)
	}
	return tbl.Surface()
}

// Evaluator is the high-fidelity performance evaluator tried before the
// surface. None ships, so every run probes [aero.Unavailable] and logs the
// fallback.
func (a AeroConfig) Evaluator() aero.Evaluator {
	return aero.Unavailable{}
}

// Simulator wires turbine, evaluator, surface and controller. opts are
// applied last and may replace any of them.
func (c *Config) Simulator(log *logrus.Entry, opts ...sim.Option) (*sim.Simulator, turbine.Params, error) {
	p, err := c.TurbineParams()
	if err != nil {
		return nil, p, err
	}
	surf, err := c.Aero.Surface()
	if err != nil {
		return nil, p, err
	}
	open, err := c.Controller.Opener()
	if err != nil {
		return nil, p, err
	}
	base := []sim.Option{
		sim.WithEvaluator(c.Aero.Evaluator()),
		sim.WithSurface(surf),
		sim.WithController(open),
	}
	if log != nil {
		base = append(base, sim.WithLogger(log))
	}
	return sim.New(p, append(base, opts...)...), p, nil
}
