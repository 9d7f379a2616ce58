// Package field provides the particle field simulator.
//
// The package defines the simulation primitives and the host contract:
//
//   - [Field]: particles, trail points and the cursor, advanced by [Field.Step]
//     and drawn by [Field.Render]
//   - [Simulator]: start/stop lifecycle over a [Surface] and a [FrameScheduler]
//   - [FrameQueue]: pump-driven scheduler used by every host in this module
//   - [Run] and [Ensemble]: headless runs for tooling and tests
//
// # Example
//
//	q := field.NewFrameQueue()
//	s := field.NewSimulator(surface, q, rand.New(rand.NewSource(1)), field.DefaultParams())
//	s.Start(1280, 720)
//	for running {
//		s.PointerMove(x, y)
//		q.Pump()
//	}
//	s.Stop()
//
// # Thread Safety
//
// Simulator and Field are NOT thread-safe. Pointer handlers and frame callbacks
// must run on the same goroutine, which is what [FrameQueue] guarantees when it
// is pumped from the host's event loop. [Ensemble] runs independent simulators
// concurrently.
package field
