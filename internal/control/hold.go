package control

import (
	"github.com/san-kum/windsim/internal/discon"
	"github.com/san-kum/windsim/internal/turbine"
)

// Hold is an open-loop controller that demands fixed torque and pitch on
// every call. Pitch is in degrees.
type Hold struct {
	Torque float64
	Pitch  float64
}

func NewHold(torque, pitch float64) *Hold {
	return &Hold{Torque: torque, Pitch: pitch}
}

func (h *Hold) Discon(swap *float32, fail *int32, inFile, outName, msg *byte) {
	s := discon.View(swap, discon.MinSwapSize)
	if s.Status() == discon.StatusFinal {
		return
	}
	s.SetDemandedGenTorque(h.Torque)
	s.SetDemandedPitch(turbine.DegToRad(h.Pitch))
}

func (h *Hold) Close() error { return nil }
