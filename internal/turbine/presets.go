package turbine

import "sort"

// Drivetrain inertia is referred to the low-speed shaft: rotor plus
// generator inertia scaled by the square of the gearbox ratio.
var presets = map[string]Params{
	"NREL-5MW": {
		Name:                "NREL-5MW",
		RotorRadius:         63.0,
		GearboxRatio:        97.0,
		RotorInertia:        38759228.0 + 534.116*97.0*97.0,
		AirDensity:          1.225,
		GearboxEfficiency:   0.95,
		GeneratorEfficiency: 0.95,
	},
	"IEA-15MW": {
		Name:                "IEA-15MW",
		RotorRadius:         120.97,
		GearboxRatio:        1.0,
		RotorInertia:        310619488.0 + 1836784.0,
		AirDensity:          1.225,
		GearboxEfficiency:   1.0,
		GeneratorEfficiency: 0.9655,
	},
	"BAR": {
		Name:                "BAR",
		RotorRadius:         103.0,
		GearboxRatio:        1.0,
		RotorInertia:        1.7e8,
		AirDensity:          1.225,
		GearboxEfficiency:   1.0,
		GeneratorEfficiency: 0.9655,
	},
}

// Preset returns a copy of a named reference turbine.
func Preset(name string) (Params, bool) {
	p, ok := presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
