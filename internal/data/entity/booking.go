package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// validTransitions defines the booking lifecycle state machine.
// Cancelled is terminal: a cancelled booking is never flipped back, it is
// re-reserved through the ledger so capacity is re-checked.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
	BookingStatusCancelled: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// HoldsSeats reports whether a booking in this status counts against the
// committed counter of its tour date.
func (s BookingStatus) HoldsSeats() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// TransitionSources returns the statuses allowed to move to target, derived
// from validTransitions so guarded updates cannot drift from the map.
func TransitionSources(target BookingStatus) []BookingStatus {
	var sources []BookingStatus
	for _, s := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled} {
		if s.CanTransitionTo(target) {
			sources = append(sources, s)
		}
	}
	return sources
}

func (s BookingStatus) String() string {
	return string(s)
}

// Booking records one customer's seat commitment against a tour date.
// While the status holds seats, Seats() is counted in the tour date's
// committed counter; cancelling releases them. Bookings are never deleted.
type Booking struct {
	Base
	OrderID          string        `db:"order_id"`
	TourID           uuid.UUID     `db:"tour_id"`
	Date             string        `db:"date"`
	CustomerName     string        `db:"customer_name"`
	CustomerEmail    string        `db:"customer_email"`
	CustomerPhone    string        `db:"customer_phone"`
	Adults           int           `db:"adults"`
	Children         int           `db:"children"`
	TotalPrice       float64       `db:"total_price"`
	Status           BookingStatus `db:"status"`
	PaymentReference string        `db:"payment_reference"`
	SpecialRequests  string        `db:"special_requests"`
}

// Seats returns the number of capacity units this booking holds.
func (b *Booking) Seats() int {
	return b.Adults + b.Children
}
