package orders

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrStale: a newer load was issued before this one resolved; its result was discarded.
	ErrStale = errors.New("order page superseded by a newer request")
)

// FetchError is a failed order page fetch. Status is 0 for transport failures.
type FetchError struct {
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching orders failed (%d): %s", e.Status, e.Message)
	}
	return "fetching orders failed: " + e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Msg }
