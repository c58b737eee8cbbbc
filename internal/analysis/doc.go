// Package analysis post-processes recorded runs.
//
//   - [ComputeSpectrum]: amplitude spectrum of a series, e.g. rotor speed
//     oscillation under a badly tuned pitch loop
//   - [NewPortrait]: one series against another, such as the torque-speed curve
//   - [PowerCurve]: settled operating points of a wind speed sweep
//   - [SettlingTime]: when a series enters a band around its final value
//
// # Oscillation Check
//
//	spec, err := analysis.ComputeSpectrum(st.RotorSpeed, st.Dt)
//	f, amp := spec.Dominant()
package analysis
