// Package turbine holds the physical constants of a wind turbine used by the
// reduced-order rotor model.
//
// [Params] is a plain value: it is copied into every component that needs it
// and never mutated after construction. Named reference turbines are available
// through [Preset]:
//
//	p, ok := turbine.Preset("NREL-5MW")
//	if !ok {
//	    // unknown turbine
//	}
package turbine
