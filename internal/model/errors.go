package model

import "errors"

var (
	// ErrInvalidArgument reports a violated precondition: non-positive
	// dimensions, a malformed threshold or a missing collaborator.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotInitialized reports use of a collection that was never built with
	// its constructor.
	ErrNotInitialized = errors.New("not initialized")

	// ErrInvariantViolation reports corrupted layout state: overlapping or
	// out-of-bounds placements, or a re-insertion that propagation should have
	// made impossible. It indicates a bug, not a retryable condition.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrCrossoverExhausted reports that no usable cross window was found
	// within the attempt budget.
	ErrCrossoverExhausted = errors.New("crossover attempt budget exhausted")

	// ErrTerminated reports an Evolve call on a driver that already finished.
	ErrTerminated = errors.New("evolution already terminated")
)
