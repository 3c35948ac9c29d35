package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBookingTransitionRejectsUnknownStatus(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	booking := &entity.Booking{Status: entity.BookingStatusPending}
	booking.ID = uuid.New()
	require.NoError(t, repo.Create(ctx, booking))

	ok, err := repo.TransitionStatus(ctx, booking.ID,
		[]entity.BookingStatus{entity.BookingStatusPending},
		entity.BookingStatus("refunded"), "")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))

	// The guarded update must not have touched the booking.
	stored, err := repo.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
}
