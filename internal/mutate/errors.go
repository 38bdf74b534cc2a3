package mutate

import (
	"errors"
	"fmt"
)

// ErrMutationInFlight rejects a second mutation against an item that already
// has one outstanding. Reject, not queue: rapid double-fire on the same item
// is a user error we surface instead of guessing.
var ErrMutationInFlight = errors.New("mutation already in flight for this item")

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ValidationError is a client-side rejection raised before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MutationError wraps a server-side failure of one mutation. Optimistic
// mutations have been rolled back by the time the caller sees this.
type MutationError struct {
	Op     Op
	ItemID string
	Err    error
}

func (e MutationError) Error() string {
	if e.ItemID == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.ItemID, e.Err)
}

func (e MutationError) Unwrap() error { return e.Err }
