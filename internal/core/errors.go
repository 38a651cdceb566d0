package core

import "errors"

// Sentinel error kinds shared by the generators. Call sites wrap them with
// fmt.Errorf("%w: ...") context and callers test with errors.Is.
var (
	// ErrOutOfBounds reports a coordinate outside the grid. Coordinates are
	// never clamped silently.
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrInvalidConfig reports a parameter set that cannot produce a valid
	// result (floors < 1, room size larger than footprint, and so on).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrExhausted reports that a randomized search gave up after its
	// attempt budget. Callers may retry with relaxed constraints or a new
	// seed.
	ErrExhausted = errors.New("generation attempts exhausted")

	// ErrConnectivity reports a cave that still has disconnected walkable
	// regions after the tunneling pass. It indicates an algorithm defect.
	ErrConnectivity = errors.New("walkable region not connected")

	// ErrNoSuchLevel reports an operation against a z-level that was never
	// created.
	ErrNoSuchLevel = errors.New("z-level does not exist")

	// ErrLevelExists reports an attempt to create a z-level twice.
	ErrLevelExists = errors.New("z-level already exists")
)
