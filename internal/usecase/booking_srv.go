package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
	"github.com/royalnordicfi/royalnordic/internal/data/repository"
	"github.com/royalnordicfi/royalnordic/internal/dto/request"
	"github.com/royalnordicfi/royalnordic/internal/dto/response"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking reserves seats and records a pending booking. Either the
	// seats are committed and the booking exists, or neither happened.
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// Admin reads.
	GetBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	season   *SeasonPolicy
	notifier Notifier
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, season *SeasonPolicy, notifier Notifier, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		season:   season,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	seats := req.Adults + req.Children
	if seats < 1 {
		return nil, fmt.Errorf("%w: booking must include at least one participant", entity.ErrInvalidInput)
	}

	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tour id %s", entity.ErrInvalidInput, req.TourID)
	}

	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if err := s.season.IsBookable(tour, req.Date); err != nil {
		return nil, err
	}

	// The price the customer saw must match the price the catalog computes
	// now. The stored total is always the server's number.
	total := tour.PriceFor(req.Adults, req.Children)
	if math.Abs(total-req.TotalPrice) > 0.005 {
		return nil, fmt.Errorf("%w: total price %.2f does not match current pricing %.2f",
			entity.ErrInvalidInput, req.TotalPrice, total)
	}

	// Seats first. The ledger is the only gate against oversell; the booking
	// row is bookkeeping on top of a successful commit.
	if err := s.repo.Availability.TryCommit(ctx, tourID, req.Date, seats, tour.MaxCapacity); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:         utils.GenerateOrderID(),
		TourID:          tourID,
		Date:            req.Date,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Adults:          req.Adults,
		Children:        req.Children,
		TotalPrice:      total,
		Status:          entity.BookingStatusPending,
		SpecialRequests: req.SpecialRequests,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// Seats were committed but the booking was not recorded. Hand the
		// seats back so the failure leaves no trace in the ledger.
		if relErr := s.repo.Availability.Release(ctx, tourID, req.Date, seats); relErr != nil {
			s.log.Error("Failed to release seats after booking create failure",
				zap.Error(relErr),
				zap.String("tour_id", req.TourID),
				zap.String("date", req.Date),
				zap.Int("seats", seats),
			)
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("tour_id", req.TourID),
			zap.String("date", req.Date),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("tour_id", req.TourID),
		zap.String("date", req.Date),
		zap.Int("seats", seats),
		zap.Float64("total_price", total),
	)

	go s.notify(func(ctx context.Context) error {
		return s.notifier.BookingReceived(ctx, booking, tour.Name)
	}, booking.ID)

	resp := response.BookingToResponse(booking, tour.Name)
	return &resp, nil
}

func (s *bookingService) GetBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	// Tour names are looked up once per distinct tour in the page.
	tourNames := make(map[uuid.UUID]string)
	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		name, ok := tourNames[b.TourID]
		if !ok {
			if tour, err := s.repo.Tour.FindByID(ctx, b.TourID); err == nil {
				name = tour.Name
			}
			tourNames[b.TourID] = name
		}
		items[i] = response.BookingToResponse(b, name)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id %s", entity.ErrInvalidInput, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var tourName string
	if tour, err := s.repo.Tour.FindByID(ctx, booking.TourID); err == nil {
		tourName = tour.Name
	}

	resp := response.BookingToResponse(booking, tourName)
	return &resp, nil
}

// notify runs a notification off the request path with its own timeout.
func (s *bookingService) notify(send func(context.Context) error, bookingID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := send(ctx); err != nil {
		s.log.Warn("Notification failed",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
	}
}
