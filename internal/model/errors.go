package model

import (
	"errors"
	"fmt"
)

// Claim lifecycle errors. These are expected business outcomes, not
// infrastructure faults: callers check them with errors.Is and present
// them to users instead of crashing.
var (
	// ErrNotFound means the item id does not exist.
	ErrNotFound = errors.New("item not found")

	// ErrInvalidTransition means the requested status change is not a
	// legal edge of the state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConcurrentModification means the conditioned write lost a race:
	// the item's status no longer matched the expected value.
	ErrConcurrentModification = errors.New("item was modified concurrently")

	// ErrClaimNoLongerAvailable means another claimant or the finder got
	// to the item first; a claim request or hand-off cannot proceed.
	ErrClaimNoLongerAvailable = errors.New("item is no longer available for claiming")

	// ErrStaleClaimState means a pending claim was resolved by someone
	// else before this approve/reject took effect.
	ErrStaleClaimState = errors.New("claim state changed since it was read")

	// ErrAuditWriteFailed means a transition committed but its history
	// entry could not be appended. The state change stands.
	ErrAuditWriteFailed = errors.New("status history append failed")
)

// StatusConflictError reports a conditioned write that found the item
// in a different status than expected. Current lets callers react to
// what actually happened (e.g. tell the user who lost a claim race
// whether the item is pending or already claimed).
type StatusConflictError struct {
	Expected string
	Current  string
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("item status is %q, expected %q", e.Current, e.Expected)
}

func (e *StatusConflictError) Unwrap() error {
	return ErrConcurrentModification
}
