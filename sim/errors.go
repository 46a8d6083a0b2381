package sim

import "errors"

// Sentinel errors surfaced by the engine, the queue and the event model.
// Callers match them with errors.Is; call sites wrap them with context.
var (
	// ErrInvalidArgument reports absent items, nil particles, negative time
	// limits and non-physical particle parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyQueue reports an extraction from an empty MinQueue.
	ErrEmptyQueue = errors.New("priority queue is empty")

	// ErrDomainViolation reports a particle that left the unit square.
	// The run that produced it is void.
	ErrDomainViolation = errors.New("particle left the simulation domain")

	// ErrUnsupported reports Apply on a tick event. Ticks are handled by the engine.
	ErrUnsupported = errors.New("operation not supported")

	// ErrAlreadyRun reports a second Simulate call on a single-use Engine.
	ErrAlreadyRun = errors.New("engine already ran")
)
