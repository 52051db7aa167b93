package customers

import (
	"errors"
	"fmt"
)

// ErrRaceRetryExhausted: create failed as a duplicate phone and the recovery
// lookup still found nothing.
var ErrRaceRetryExhausted = errors.New("customer not found after duplicate-phone retry")

// ValidationError is bad caller input (invalid phone, missing name).
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// LookupError is a failed by-phone search (transport error or unexpected status).
type LookupError struct {
	Phone  string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *LookupError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("customer lookup for %s failed with status %d: %v", e.Phone, e.Status, e.Err)
	}
	return fmt.Sprintf("customer lookup for %s failed: %v", e.Phone, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// CreationError is a create failure that could not be recovered. Msg carries the
// server message, field errors preferred.
type CreationError struct {
	Phone string
	Msg   string
	Err   error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("creating customer %s: %s", e.Phone, e.Msg)
}

func (e *CreationError) Unwrap() error { return e.Err }
