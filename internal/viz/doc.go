// Package viz renders concentration profiles in the terminal.
//
//   - [PlotProfile]: asciigraph line plot of a single field
//   - [PlotProfiles]: several fields on one set of axes
//   - [Model]: Bubble Tea model that steps a run and redraws it live
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial profile
//	+/-   - Double/halve steps per frame
//	Q     - Quit
package viz
