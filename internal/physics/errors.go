package physics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMass indicates a movable body with non-positive mass.
	ErrInvalidMass = errors.New("physics: mass must be positive for movable bodies")

	// ErrInvalidSize indicates a body with a non-positive width or height.
	ErrInvalidSize = errors.New("physics: size must be positive")

	// ErrInvalidTimestep indicates a non-positive or non-finite dt.
	ErrInvalidTimestep = errors.New("physics: timestep must be positive and finite")

	// ErrNonFinite indicates a body state diverged to NaN or Inf.
	ErrNonFinite = errors.New("physics: body state is not finite")
)

// TickError reports the body that aborted a world tick.
type TickError struct {
	Tick    uint64
	ID      ID
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (body %d): %v", e.Tick, e.ID, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
