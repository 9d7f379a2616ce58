// Package pointer provides synthetic pointer input for headless runs.
//
// Drivers implement the [field.Driver] interface and produce one
// [field.Input] per frame:
//
//   - [None]: no pointer activity
//   - [Orbit]: circles the surface centre, clicking every N frames
//   - [Sweep]: rasters left and right across the surface
//   - [Wander]: seeded random walk with random clicks
//   - [Script]: timed move and click events loaded from YAML
//
// # Usage
//
//	drv, err := pointer.New("orbit", pointer.Options{ClickEvery: 30})
//	res, err := field.Run(ctx, field.RunConfig{Driver: drv, ...})
package pointer
