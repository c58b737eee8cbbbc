// Package viz renders runs in the terminal.
//
//   - [PlotSeries] and [PlotSweep]: asciigraph line charts of recorded series
//   - [Summary]: a lipgloss panel of run metrics
//   - [Replay]: a Bubble Tea model that plays a stored run back, drawing the
//     rotor on a braille [Canvas] as it turns
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	←/→   - Step one sample
//	+/-   - Playback speed
//	T     - Cycle color themes
//	Q     - Quit
package viz
