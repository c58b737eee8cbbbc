package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/windsim/internal/control"
	"github.com/san-kum/windsim/internal/sim"
	"github.com/san-kum/windsim/internal/turbine"
	"github.com/san-kum/windsim/internal/wind"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTurbine  = "NREL-5MW"
	DefaultDt       = 0.05
	DefaultDuration = 100.0
	DefaultWind     = 10.0
	DefaultWorkers  = 4
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Turbine    string           `yaml:"turbine"`
	Params     *turbine.Params  `yaml:"params,omitempty"`
	Dt         float64          `yaml:"dt"`
	Duration   float64          `yaml:"duration"`
	Init       InitConfig       `yaml:"init"`
	Wind       WindConfig       `yaml:"wind"`
	Aero       AeroConfig       `yaml:"aero"`
	Controller ControllerConfig `yaml:"controller"`
	Sweep      SweepConfig      `yaml:"sweep"`
}

type InitConfig struct {
	RotorRPM   float64 `yaml:"rotor_rpm"`
	Pitch      float64 `yaml:"pitch"`
	AeroTorque float64 `yaml:"aero_torque"`
	GenTorque  float64 `yaml:"gen_torque"`
	GenPower   float64 `yaml:"gen_power"`
}

// WindConfig selects a profile: constant, step, ramp or file. A step goes
// from Speed to After at Start; a ramp goes from Speed to After between
// Start and End.
type WindConfig struct {
	Profile string  `yaml:"profile"`
	Speed   float64 `yaml:"speed"`
	After   float64 `yaml:"after,omitempty"`
	Start   float64 `yaml:"start,omitempty"`
	End     float64 `yaml:"end,omitempty"`
	File    string  `yaml:"file,omitempty"`
}

type AeroConfig struct {
	PerformanceFile string `yaml:"performance_file,omitempty"`
}

// ControllerConfig selects baseline, hold or native. Native loads Library
// through the DISCON entry point.
type ControllerConfig struct {
	Type      string        `yaml:"type"`
	Library   string        `yaml:"library,omitempty"`
	ParamFile string        `yaml:"param_file,omitempty"`
	OutName   string        `yaml:"out_name,omitempty"`
	Symbol    string        `yaml:"symbol,omitempty"`
	Baseline  control.Gains `yaml:"baseline"`
	Hold      HoldConfig    `yaml:"hold"`
}

type HoldConfig struct {
	Torque float64 `yaml:"torque"`
	Pitch  float64 `yaml:"pitch"`
}

type SweepConfig struct {
	WindSpeeds []float64 `yaml:"wind_speeds"`
	Workers    int       `yaml:"workers"`
}

func DefaultConfig() *Config {
	x0 := sim.DefaultInitial()
	return &Config{
		Turbine:  DefaultTurbine,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Init: InitConfig{
			RotorRPM:   x0.RotorRPM,
			Pitch:      x0.Pitch,
			AeroTorque: x0.AeroTorque,
			GenTorque:  x0.GenTorque,
			GenPower:   x0.GenPower,
		},
		Wind: WindConfig{
			Profile: "constant",
			Speed:   DefaultWind,
		},
		Controller: ControllerConfig{
			Type:     "baseline",
			Baseline: control.NREL5MWGains(),
		},
		Sweep: SweepConfig{
			WindSpeeds: []float64{6, 8, 10, 12, 14, 16, 18},
			Workers:    DefaultWorkers,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := c.TurbineParams(); err != nil {
		return err
	}
	if c.Wind.Profile != "file" {
		if c.Dt <= 0 || c.Duration < c.Dt {
			return fmt.Errorf("%w: need 0 < dt <= duration, got dt=%g duration=%g", ErrInvalidConfig, c.Dt, c.Duration)
		}
	}
	switch c.Controller.Type {
	case "baseline":
		return c.Controller.Baseline.Validate()
	case "hold":
	case "native":
		if c.Controller.Library == "" {
			return fmt.Errorf("%w: native controller needs a library path", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown controller type %q", ErrInvalidConfig, c.Controller.Type)
	}
	return nil
}

// TurbineParams returns explicit params when present, else the named preset.
func (c *Config) TurbineParams() (turbine.Params, error) {
	if c.Params != nil {
		return *c.Params, c.Params.Validate()
	}
	p, ok := turbine.Preset(c.Turbine)
	if !ok {
		return turbine.Params{}, fmt.Errorf("%w: unknown turbine %q", ErrInvalidConfig, c.Turbine)
	}
	return p, nil
}

func (c *Config) Initial() sim.Initial {
	return sim.Initial{
		RotorRPM:   c.Init.RotorRPM,
		Pitch:      c.Init.Pitch,
		AeroTorque: c.Init.AeroTorque,
		GenTorque:  c.Init.GenTorque,
		GenPower:   c.Init.GenPower,
	}
}

// WindProfile builds the analytic profile. File profiles have none.
func (c *Config) WindProfile() (wind.Profile, error) {
	w := c.Wind
	switch w.Profile {
	case "", "constant":
		return wind.Constant{Speed: w.Speed}, nil
	case "step":
		return wind.Step{Before: w.Speed, After: w.After, Time: w.Start}, nil
	case "ramp":
		if w.End <= w.Start {
			return nil, fmt.Errorf("%w: ramp end %g must follow start %g", ErrInvalidConfig, w.End, w.Start)
		}
		return wind.Ramp{From: w.Speed, To: w.After, Start: w.Start, End: w.End}, nil
	}
	return nil, fmt.Errorf("%w: unknown wind profile %q", ErrInvalidConfig, w.Profile)
}

// Series returns the time and wind arrays for one run.
func (c *Config) Series() (times, speeds []float64, err error) {
	if c.Wind.Profile == "file" {
		if c.Wind.File == "" {
			return nil, nil, fmt.Errorf("%w: file wind profile needs a path", ErrInvalidConfig)
		}
		return wind.LoadSeries(c.Wind.File)
	}
	p, err := c.WindProfile()
	if err != nil {
		return nil, nil, err
	}
	times, err = wind.TimeGrid(c.Dt, c.Duration)
	if err != nil {
		return nil, nil, err
	}
	return times, wind.Sample(p, times), nil
}

// Cases expands the sweep wind speeds into constant-wind runs on the
// configured time grid.
func (c *Config) Cases() ([]sim.Case, error) {
	if len(c.Sweep.WindSpeeds) == 0 {
		return nil, fmt.Errorf("%w: sweep has no wind speeds", ErrInvalidConfig)
	}
	times, err := wind.TimeGrid(c.Dt, c.Duration)
	if err != nil {
		return nil, err
	}
	cases := make([]sim.Case, 0, len(c.Sweep.WindSpeeds))
	for _, ws := range c.Sweep.WindSpeeds {
		cases = append(cases, sim.Case{
			Name:    fmt.Sprintf("ws_%g", ws),
			Times:   times,
			Wind:    wind.Sample(wind.Constant{Speed: ws}, times),
			Initial: c.Initial(),
		})
	}
	return cases, nil
}
