package usecase

import (
	"context"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
)

// Notifier sends customer-facing booking emails. Calls are fire-and-forget:
// services invoke them in a goroutine and a failed send never fails the
// booking operation that triggered it.
type Notifier interface {
	BookingReceived(ctx context.Context, booking *entity.Booking, tourName string) error
	BookingConfirmed(ctx context.Context, booking *entity.Booking, tourName string) error
	BookingCancelled(ctx context.Context, booking *entity.Booking, tourName string) error
}
