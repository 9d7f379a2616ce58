package field

import (
	"errors"
	"fmt"
)

// Domain errors for field configuration and tooling paths. Frame-level
// problems are never surfaced to hosts; the frame is skipped instead.
var (
	// ErrParameterBounds indicates a parameter value is outside its valid range.
	ErrParameterBounds = errors.New("field: parameter out of valid bounds")

	// ErrNoSurface indicates a missing or zero-size drawing surface.
	ErrNoSurface = errors.New("field: drawing surface not ready")

	// ErrInvalidParticle indicates a particle with non-finite state.
	ErrInvalidParticle = errors.New("field: invalid particle (NaN or Inf detected)")
)

// FrameError wraps an error with the frame it happened on.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
