// Package viz provides the terminal host for the particle field.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view that pumps a [field.FrameQueue] on every tick
//   - [App]: preset menu and parameter editor in front of the live view
//   - [Canvas]: braille [field.Surface] with per-cell colour
//   - Theme selection, including the dark and light page themes
//
// # Key Bindings
//
//	Mouse - Move to attract and spawn, click for a burst
//	Space - Pause/Resume simulation
//	R     - Restart the field
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
//
// # Recording
//
// Frames captured while recording are written as a GIF animation when
// recording stops or the view quits.
package viz
