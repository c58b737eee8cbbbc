// Package rotor implements the single-degree-of-freedom drivetrain model:
// aerodynamic torque from a torque coefficient, a forward-Euler update of
// rotor speed, and generator power.
//
// Speeds are in rad/s, torques in N·m. Nothing here validates its inputs.
package rotor

import (
	"math"

	"github.com/san-kum/windsim/internal/turbine"
)

// AeroTorque converts a torque coefficient into low-speed-shaft torque.
func AeroTorque(p turbine.Params, cq, windSpeed float64) float64 {
	r := p.RotorRadius
	return 0.5 * p.AirDensity * (math.Pi * r * r) * cq * r * windSpeed * windSpeed
}

// GenPower keeps the π/30 factor of the reference toolbox even though
// genSpeed is already in rad/s; reference outputs depend on it.
func GenPower(p turbine.Params, genSpeed, genTorque float64) float64 {
	return genSpeed * math.Pi / 30.0 * genTorque * p.GeneratorEfficiency
}

type Integrator struct {
	params turbine.Params
	dt     float64
}

func NewIntegrator(p turbine.Params, dt float64) *Integrator {
	return &Integrator{params: p, dt: dt}
}

func (in *Integrator) Dt() float64 { return in.dt }

// Step advances rotor speed by one timestep and returns the new rotor and
// generator speeds.
func (in *Integrator) Step(prevRotorSpeed, prevGenTorque, aeroTorque float64) (rotorSpeed, genSpeed float64) {
	p := in.params
	rotorSpeed = prevRotorSpeed + (in.dt/p.RotorInertia)*(aeroTorque*p.GearboxEfficiency-p.GearboxRatio*prevGenTorque)
	genSpeed = rotorSpeed * p.GearboxRatio
	return rotorSpeed, genSpeed
}
