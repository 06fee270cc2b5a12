package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline failure taxonomy. Callers classify with
// errors.Is after unwrapping.
var (
	// ErrResourceUnavailable is returned when an allocation targets a
	// resource that is not in the available state.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrInvalidTransition is returned for lifecycle transitions out of a
	// terminal state or into an unknown state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation marks malformed or missing required report fields,
	// rejected before any storage write.
	ErrValidation = errors.New("validation failed")

	// ErrStorage marks persistence-layer failures, fatal to the current step.
	ErrStorage = errors.New("storage failure")

	// ErrEnrichment marks summary or action generation failures, recoverable
	// at the orchestrator level.
	ErrEnrichment = errors.New("enrichment failed")

	// ErrIntake marks a fatal failure persisting the disaster itself.
	ErrIntake = errors.New("intake failed")

	// ErrDownstreamTimeout marks an external call that exceeded its deadline.
	ErrDownstreamTimeout = errors.New("downstream timeout")

	// ErrNotFound is returned by the store when a row does not exist.
	ErrNotFound = errors.New("not found")
)

func ValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

func EnrichmentError(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrEnrichment, step, err)
}
