package turbine

import (
	"errors"
	"fmt"
)

// ErrInvalidParams indicates a physical constant outside its valid range.
var ErrInvalidParams = errors.New("turbine: invalid parameters")

type Params struct {
	Name                string  `yaml:"name" json:"name"`
	RotorRadius         float64 `yaml:"rotor_radius" json:"rotor_radius"`
	GearboxRatio        float64 `yaml:"gearbox_ratio" json:"gearbox_ratio"`
	RotorInertia        float64 `yaml:"rotor_inertia" json:"rotor_inertia"`
	AirDensity          float64 `yaml:"air_density" json:"air_density"`
	GearboxEfficiency   float64 `yaml:"gearbox_efficiency" json:"gearbox_efficiency"`
	GeneratorEfficiency float64 `yaml:"generator_efficiency" json:"generator_efficiency"`
}

// Validate reports the first constant that cannot drive the 1DOF model.
func (p Params) Validate() error {
	switch {
	case p.RotorRadius <= 0:
		return fmt.Errorf("%w: rotor radius must be positive, got %g", ErrInvalidParams, p.RotorRadius)
	case p.GearboxRatio <= 0:
		return fmt.Errorf("%w: gearbox ratio must be positive, got %g", ErrInvalidParams, p.GearboxRatio)
	case p.RotorInertia <= 0:
		return fmt.Errorf("%w: rotor inertia must be positive, got %g", ErrInvalidParams, p.RotorInertia)
	case p.AirDensity <= 0:
		return fmt.Errorf("%w: air density must be positive, got %g", ErrInvalidParams, p.AirDensity)
	case p.GearboxEfficiency <= 0 || p.GearboxEfficiency > 1:
		return fmt.Errorf("%w: gearbox efficiency must be in (0, 1], got %g", ErrInvalidParams, p.GearboxEfficiency)
	case p.GeneratorEfficiency <= 0 || p.GeneratorEfficiency > 1:
		return fmt.Errorf("%w: generator efficiency must be in (0, 1], got %g", ErrInvalidParams, p.GeneratorEfficiency)
	}
	return nil
}

// RotorArea is the swept area of the rotor disc.
func (p Params) RotorArea() float64 {
	return pi * p.RotorRadius * p.RotorRadius
}
