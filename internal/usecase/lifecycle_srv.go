package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
	"github.com/royalnordicfi/royalnordic/internal/data/repository"
	"github.com/royalnordicfi/royalnordic/internal/dto/request"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LifecycleService moves bookings through their states. Every transition is
// a guarded compare-and-set in the booking repository, so two concurrent
// callers racing on the same booking resolve to exactly one winner, and the
// seat ledger is touched exactly once per outcome.
type LifecycleService interface {
	// ConfirmPayment flips a pending booking to confirmed and records the
	// payment reference. Confirming an already confirmed booking is a no-op
	// so provider webhook retries stay safe.
	ConfirmPayment(ctx context.Context, bookingID, paymentRef string) error

	// Cancel moves a pending or confirmed booking to cancelled and releases
	// its seats. A booking already cancelled returns entity.ErrAlreadyTerminal
	// and leaves the ledger alone.
	Cancel(ctx context.Context, bookingID string) error

	// Reinstate revives a cancelled booking. It is not a status rewind: the
	// seats go back through the ledger and the call fails with
	// InsufficientCapacityError when they have since been taken.
	Reinstate(ctx context.Context, bookingID string) error

	// ProcessWebhook applies a payment provider event to its booking.
	ProcessWebhook(ctx context.Context, req *request.PaymentWebhookRequest) error

	// SweepExpired cancels pending bookings older than the expiry window and
	// returns how many it cancelled.
	SweepExpired(ctx context.Context) (int, error)

	// RunSweeper runs SweepExpired on a ticker until the context ends.
	RunSweeper(ctx context.Context)
}

type lifecycleService struct {
	repo          *repository.Repository
	notifier      Notifier
	pendingExpiry time.Duration
	sweepInterval time.Duration
	log           *zap.Logger
}

func NewLifecycleService(repo *repository.Repository, notifier Notifier, config *utils.Config, log *zap.Logger) LifecycleService {
	return &lifecycleService{
		repo:          repo,
		notifier:      notifier,
		pendingExpiry: time.Duration(config.Booking.PendingExpiryMinutes) * time.Minute,
		sweepInterval: time.Duration(config.Booking.SweepIntervalMinutes) * time.Minute,
		log:           log.With(zap.String("service", "lifecycle")),
	}
}

func (s *lifecycleService) ConfirmPayment(ctx context.Context, bookingID, paymentRef string) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	ok, err := s.repo.Booking.TransitionStatus(ctx, booking.ID,
		entity.TransitionSources(entity.BookingStatusConfirmed),
		entity.BookingStatusConfirmed, paymentRef)
	if err != nil {
		return fmt.Errorf("confirm booking %s: %w", bookingID, err)
	}
	if !ok {
		// Lost the race or arrived late. A repeat confirm is fine; anything
		// else means the booking is past confirming.
		current, err := s.repo.Booking.FindByID(ctx, booking.ID)
		if err != nil {
			return err
		}
		if current.Status == entity.BookingStatusConfirmed {
			return nil
		}
		if current.Status.IsTerminal() {
			return fmt.Errorf("confirm booking %s in status %s: %w",
				bookingID, current.Status, entity.ErrAlreadyTerminal)
		}
		return fmt.Errorf("confirm booking %s: lost transition from status %s",
			bookingID, current.Status)
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
		zap.String("payment_reference", paymentRef),
	)

	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentReference = paymentRef
	s.notifyAsync(booking, s.notifier.BookingConfirmed)
	return nil
}

func (s *lifecycleService) Cancel(ctx context.Context, bookingID string) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	return s.cancel(ctx, booking)
}

// cancel is the single cancellation path shared by admin cancels, failed
// payment webhooks and the expiry sweep. Seats are released only by the
// caller that wins the status transition.
func (s *lifecycleService) cancel(ctx context.Context, booking *entity.Booking) error {
	ok, err := s.repo.Booking.TransitionStatus(ctx, booking.ID,
		entity.TransitionSources(entity.BookingStatusCancelled),
		entity.BookingStatusCancelled, "")
	if err != nil {
		return fmt.Errorf("cancel booking %s: %w", booking.ID.String(), err)
	}
	if !ok {
		return fmt.Errorf("cancel booking %s: %w", booking.ID.String(), entity.ErrAlreadyTerminal)
	}

	if err := s.repo.Availability.Release(ctx, booking.TourID, booking.Date, booking.Seats()); err != nil {
		// The cancel stands; the seats just were not returned. Loud log so
		// the ledger can be corrected by hand.
		s.log.Error("Failed to release seats for cancelled booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("tour_id", booking.TourID.String()),
			zap.String("date", booking.Date),
			zap.Int("seats", booking.Seats()),
		)
		return fmt.Errorf("release seats for booking %s: %w", booking.ID.String(), err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.Int("seats_released", booking.Seats()),
	)

	booking.Status = entity.BookingStatusCancelled
	s.notifyAsync(booking, s.notifier.BookingCancelled)
	return nil
}

func (s *lifecycleService) Reinstate(ctx context.Context, bookingID string) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.Status.HoldsSeats() {
		return fmt.Errorf("%w: booking %s is %s and already holds its seats, only cancelled bookings can be reinstated",
			entity.ErrInvalidInput, bookingID, booking.Status)
	}

	tour, err := s.repo.Tour.FindByID(ctx, booking.TourID)
	if err != nil {
		return err
	}

	// Seats must be won back through the ledger; they may be gone.
	if err := s.repo.Availability.TryCommit(ctx, booking.TourID, booking.Date, booking.Seats(), tour.MaxCapacity); err != nil {
		return err
	}

	ok, err := s.repo.Booking.TransitionStatus(ctx, booking.ID,
		[]entity.BookingStatus{entity.BookingStatusCancelled},
		entity.BookingStatusPending, "")
	if err != nil || !ok {
		// Someone else already reinstated it; give back our commit.
		if relErr := s.repo.Availability.Release(ctx, booking.TourID, booking.Date, booking.Seats()); relErr != nil {
			s.log.Error("Failed to release seats after reinstate race",
				zap.Error(relErr),
				zap.String("booking_id", bookingID),
			)
		}
		if err != nil {
			return fmt.Errorf("reinstate booking %s: %w", bookingID, err)
		}
		return fmt.Errorf("reinstate booking %s: %w", bookingID, entity.ErrAlreadyTerminal)
	}

	s.log.Info("Booking reinstated",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
		zap.Int("seats", booking.Seats()),
	)
	return nil
}

func (s *lifecycleService) ProcessWebhook(ctx context.Context, req *request.PaymentWebhookRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Webhook validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", entity.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	switch req.Type {
	case request.WebhookCheckoutCompleted:
		return s.ConfirmPayment(ctx, req.BookingID, req.PaymentReference)

	case request.WebhookCheckoutFailed, request.WebhookCheckoutExpired:
		err := s.Cancel(ctx, req.BookingID)
		// Provider retries deliver the same event more than once; a booking
		// that is already cancelled is the desired end state.
		if errors.Is(err, entity.ErrAlreadyTerminal) {
			return nil
		}
		return err
	}

	return fmt.Errorf("%w: unknown webhook type %s", entity.ErrInvalidInput, req.Type)
}

func (s *lifecycleService) SweepExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.pendingExpiry)

	expired, err := s.repo.Booking.FindPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("find expired pending bookings: %w", err)
	}

	swept := 0
	for _, booking := range expired {
		if err := s.cancel(ctx, booking); err != nil {
			// Raced with a confirm or another sweep; skip and move on.
			if errors.Is(err, entity.ErrAlreadyTerminal) {
				continue
			}
			s.log.Error("Failed to sweep expired booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			continue
		}
		swept++
	}

	if swept > 0 {
		s.log.Info("Expired pending bookings swept", zap.Int("count", swept))
	}
	return swept, nil
}

func (s *lifecycleService) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	s.log.Info("Pending booking sweeper started",
		zap.Duration("interval", s.sweepInterval),
		zap.Duration("expiry", s.pendingExpiry),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Pending booking sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepExpired(ctx); err != nil {
				s.log.Error("Sweep failed", zap.Error(err))
			}
		}
	}
}

func (s *lifecycleService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id %s", entity.ErrInvalidInput, bookingID)
	}
	return s.repo.Booking.FindByID(ctx, id)
}

func (s *lifecycleService) notifyAsync(booking *entity.Booking, send func(context.Context, *entity.Booking, string) error) {
	var tourName string
	if tour, err := s.repo.Tour.FindByID(context.Background(), booking.TourID); err == nil {
		tourName = tour.Name
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := send(ctx, booking, tourName); err != nil {
			s.log.Warn("Notification failed",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}
	}()
}
