package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusConfirmed))
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusCancelled))
	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCancelled))

	assert.False(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusPending))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusPending))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusConfirmed))
}

func TestBookingStatusTransitionSourcesFollowTheMap(t *testing.T) {
	assert.Equal(t, []BookingStatus{BookingStatusPending},
		TransitionSources(BookingStatusConfirmed))
	assert.Equal(t, []BookingStatus{BookingStatusPending, BookingStatusConfirmed},
		TransitionSources(BookingStatusCancelled))
	assert.Empty(t, TransitionSources(BookingStatusPending))
}

func TestBookingStatusTerminality(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
}

func TestBookingStatusSeatHolding(t *testing.T) {
	assert.True(t, BookingStatusPending.HoldsSeats())
	assert.True(t, BookingStatusConfirmed.HoldsSeats())
	assert.False(t, BookingStatusCancelled.HoldsSeats())

	// Cancellation must always owe the ledger a release.
	for _, s := range TransitionSources(BookingStatusCancelled) {
		assert.True(t, s.HoldsSeats())
	}
}

func TestBookingStatusIsValid(t *testing.T) {
	assert.True(t, BookingStatusPending.IsValid())
	assert.True(t, BookingStatusConfirmed.IsValid())
	assert.True(t, BookingStatusCancelled.IsValid())
	assert.False(t, BookingStatus("refunded").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}
