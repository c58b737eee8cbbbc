// Package metrics summarises a run as it is simulated. Every metric
// implements [sim.Metric] and is fed each sample, index 0 included.
package metrics

import "github.com/san-kum/windsim/internal/sim"

// Standard returns a factory for the metric set reported by the CLI.
// overspeedLimit is the rotor speed in rad/s counted as overspeed.
func Standard(overspeedLimit float64) sim.MetricFactory {
	return func() []sim.Metric {
		return []sim.Metric{
			NewMeanPower(),
			NewEnergy(),
			NewTorqueEffort(),
			NewPitchTravel(),
			NewPeakRotorSpeed(),
			NewSpeedDrift(),
			NewOverspeed(overspeedLimit),
		}
	}
}
