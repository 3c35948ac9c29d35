package entity

import (
	"errors"
	"fmt"
)

// Expected business outcomes. Callers branch on these with errors.Is/As and
// translate them to user-facing responses; anything else is a fault and is
// logged and surfaced as an internal error.
var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for caller errors that need a changed request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCapacityBelowCommitted is returned when an admin tries to set a
	// date's capacity below the seats already committed to bookings.
	ErrCapacityBelowCommitted = errors.New("capacity below committed seats")

	// ErrContentionTimeout is returned when the ledger could not serialize a
	// commit within its deadline. Safe to retry as-is.
	ErrContentionTimeout = errors.New("availability contention timeout")

	// ErrAlreadyTerminal is returned when a status transition is requested on
	// a booking whose status does not allow it. A second cancel of an already
	// cancelled booking hits this and must not release seats again.
	ErrAlreadyTerminal = errors.New("booking already in a terminal status")
)

// NotBookableReason explains why a date rejected a booking attempt.
type NotBookableReason string

const (
	ReasonPast        NotBookableReason = "PAST"
	ReasonOutOfSeason NotBookableReason = "OUT_OF_SEASON"
)

// NotBookableError is returned when the season policy rejects a date.
type NotBookableError struct {
	Date   string
	Reason NotBookableReason
}

func (e *NotBookableError) Error() string {
	switch e.Reason {
	case ReasonPast:
		return fmt.Sprintf("date %s is in the past", e.Date)
	case ReasonOutOfSeason:
		return fmt.Sprintf("date %s is outside the tour season", e.Date)
	}
	return fmt.Sprintf("date %s is not bookable", e.Date)
}

// InsufficientCapacityError is returned when a commit asks for more seats
// than remain. Remaining carries the actual count so the caller can offer a
// corrected party size instead of a generic failure.
type InsufficientCapacityError struct {
	Requested int
	Remaining int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("requested %d seats but only %d seats remaining", e.Requested, e.Remaining)
}
