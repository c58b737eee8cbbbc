package config

import (
	"sort"

	"github.com/san-kum/windsim/internal/control"
)

func iea15MWGains() control.Gains {
	return control.Gains{
		RatedGenSpeed: 0.7917,
		RatedTorque:   19.62e6,
		OptimalGain:   3.35e7,
		MaxTorqueRate: 4.5e6,
		PitchKp:       1.0,
		PitchKi:       0.15,
		MinPitch:      0,
		MaxPitch:      90,
		MaxPitchRate:  2,
	}
}

func preset(turbineName string, gains control.Gains, dt, duration float64, w WindConfig) *Config {
	cfg := DefaultConfig()
	cfg.Turbine = turbineName
	cfg.Dt = dt
	cfg.Duration = duration
	cfg.Wind = w
	cfg.Controller.Baseline = gains
	return cfg
}

var Presets = map[string]*Config{
	"nrel5mw-rated": preset("NREL-5MW", control.NREL5MWGains(), 0.05, 100,
		WindConfig{Profile: "constant", Speed: 11.4}),
	"nrel5mw-step": preset("NREL-5MW", control.NREL5MWGains(), 0.05, 100,
		WindConfig{Profile: "step", Speed: 10, After: 11, Start: 50}),
	"nrel5mw-ramp": preset("NREL-5MW", control.NREL5MWGains(), 0.05, 300,
		WindConfig{Profile: "ramp", Speed: 6, After: 18, Start: 20, End: 280}),
	"iea15mw-rated": preset("IEA-15MW", iea15MWGains(), 0.05, 200,
		WindConfig{Profile: "constant", Speed: 10.6}),
	"iea15mw-step": preset("IEA-15MW", iea15MWGains(), 0.05, 200,
		WindConfig{Profile: "step", Speed: 9, After: 12, Start: 100}),
}

// GetPreset returns a copy of the named scenario, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	out.Sweep.WindSpeeds = append([]float64(nil), cfg.Sweep.WindSpeeds...)
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
