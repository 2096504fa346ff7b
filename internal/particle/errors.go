package particle

import "errors"

var (
	// ErrInvalidSettings wraps every settings validation failure.
	ErrInvalidSettings = errors.New("particle: invalid settings")

	// ErrInvertedRange indicates a range whose max is below its min.
	ErrInvertedRange = errors.New("particle: range max below min")
)
