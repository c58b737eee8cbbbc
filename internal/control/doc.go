// Package control provides turbine controllers that run in-process behind
// the same avrSWAP calling convention as a native DISCON library.
//
//   - [Baseline]: k·ω² torque below rated, PI pitch on generator speed above
//   - [Hold]: fixed torque and pitch demands
//
// Both satisfy [discon.Library], so they plug into [discon.NewBridge]:
//
//	ctrl, _ := control.NewBaseline(control.NREL5MWGains())
//	bridge, _ := discon.NewBridge(ctrl, discon.Options{})
//
// [PID] is the loop used by the pitch controller.
package control
