package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
	"github.com/royalnordicfi/royalnordic/internal/data/repository"
	"github.com/royalnordicfi/royalnordic/internal/dto/request"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubNotifier struct{}

func (stubNotifier) BookingReceived(context.Context, *entity.Booking, string) error  { return nil }
func (stubNotifier) BookingConfirmed(context.Context, *entity.Booking, string) error { return nil }
func (stubNotifier) BookingCancelled(context.Context, *entity.Booking, string) error { return nil }

type fixture struct {
	repo         *repository.Repository
	bookings     *repository.MemoryBookingRepository
	ledger       *repository.MemoryAvailabilityRepository
	booking      BookingService
	lifecycle    LifecycleService
	availability AvailabilityService
	tour         *entity.Tour
}

// newFixture wires the services against in-memory storage with the clock
// pinned to a mid-season day.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	bookings := repository.NewMemoryBookingRepository()
	ledger := repository.NewMemoryAvailabilityRepository()
	repo := &repository.Repository{
		Tour:         repository.NewMemoryTourRepository(),
		Availability: ledger,
		Booking:      bookings,
		Admin:        repository.NewMemoryAdminRepository(),
	}

	tour := &entity.Tour{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:        "Northern Lights Tour",
		AdultPrice:  179,
		ChildPrice:  149,
		MaxCapacity: 8,
		SeasonStart: "10-01",
		SeasonEnd:   "04-15",
	}
	require.NoError(t, repo.Tour.Create(context.Background(), tour))

	season, err := NewSeasonPolicy("Europe/Helsinki", fixedClock(t, "2026-01-10 12:00"))
	require.NoError(t, err)

	log := zap.NewNop()
	config := &utils.Config{
		Booking: utils.BookingConfig{
			Timezone:             "Europe/Helsinki",
			PendingExpiryMinutes: 30,
			SweepIntervalMinutes: 5,
		},
	}

	return &fixture{
		repo:         repo,
		bookings:     bookings,
		ledger:       ledger,
		booking:      NewBookingService(repo, season, stubNotifier{}, log),
		lifecycle:    NewLifecycleService(repo, stubNotifier{}, config, log),
		availability: NewAvailabilityService(repo, season, log),
		tour:         tour,
	}
}

func (f *fixture) bookingRequest(adults, children int) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		TourID:        f.tour.ID.String(),
		Date:          "2026-02-01",
		Adults:        adults,
		Children:      children,
		CustomerName:  "Anni Korhonen",
		CustomerEmail: "anni@example.fi",
		TotalPrice:    float64(adults)*f.tour.AdultPrice + float64(children)*f.tour.ChildPrice,
	}
}

func (f *fixture) committed(t *testing.T, date string) int {
	t.Helper()
	td, err := f.ledger.Find(context.Background(), f.tour.ID, date)
	require.NoError(t, err)
	if td == nil {
		return 0
	}
	return td.Committed
}

func TestCreateBookingCommitsSeatsAndStoresPending(t *testing.T) {
	f := newFixture(t)

	resp, err := f.booking.CreateBooking(context.Background(), f.bookingRequest(2, 1))
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3, resp.Seats)
	assert.InDelta(t, 2*179+149, resp.TotalPrice, 0.001)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, 3, f.committed(t, "2026-02-01"))
}

func TestCreateBookingRejectsZeroParticipants(t *testing.T) {
	f := newFixture(t)

	req := f.bookingRequest(0, 0)
	_, err := f.booking.CreateBooking(context.Background(), req)
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
	assert.Equal(t, 0, f.committed(t, "2026-02-01"))
}

func TestCreateBookingRejectsStalePrice(t *testing.T) {
	f := newFixture(t)

	req := f.bookingRequest(2, 0)
	req.TotalPrice = 99 // what an outdated client might display
	_, err := f.booking.CreateBooking(context.Background(), req)
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
	assert.Equal(t, 0, f.committed(t, "2026-02-01"))
}

func TestCreateBookingRejectsOutOfSeasonDate(t *testing.T) {
	f := newFixture(t)

	req := f.bookingRequest(2, 0)
	req.Date = "2026-07-01"
	_, err := f.booking.CreateBooking(context.Background(), req)

	var nb *entity.NotBookableError
	require.ErrorAs(t, err, &nb)
	assert.Equal(t, entity.ReasonOutOfSeason, nb.Reason)
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	f := newFixture(t)

	req := f.bookingRequest(2, 0)
	req.Date = "2026-01-05"
	_, err := f.booking.CreateBooking(context.Background(), req)

	var nb *entity.NotBookableError
	require.ErrorAs(t, err, &nb)
	assert.Equal(t, entity.ReasonPast, nb.Reason)
}

func TestCreateBookingUnknownTour(t *testing.T) {
	f := newFixture(t)

	req := f.bookingRequest(2, 0)
	req.TourID = uuid.NewString()
	_, err := f.booking.CreateBooking(context.Background(), req)
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestCreateBookingReleasesSeatsWhenPersistenceFails(t *testing.T) {
	f := newFixture(t)
	f.bookings.CreateErr = fmt.Errorf("connection reset")

	_, err := f.booking.CreateBooking(context.Background(), f.bookingRequest(4, 0))
	require.Error(t, err)

	// All-or-nothing: the failed booking must not hold seats.
	assert.Equal(t, 0, f.committed(t, "2026-02-01"))

	// And the date is still fully bookable afterwards.
	_, err = f.booking.CreateBooking(context.Background(), f.bookingRequest(8, 0))
	assert.NoError(t, err)
}

func TestBookingFillsDateAndCancelFreesIt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.booking.CreateBooking(ctx, f.bookingRequest(5, 0))
	require.NoError(t, err)
	_, err = f.booking.CreateBooking(ctx, f.bookingRequest(3, 0))
	require.NoError(t, err)
	assert.Equal(t, 8, f.committed(t, "2026-02-01"))

	// Sold out: one more seat has nowhere to go.
	_, err = f.booking.CreateBooking(ctx, f.bookingRequest(1, 0))
	var insufficient *entity.InsufficientCapacityError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Remaining)
	assert.Contains(t, err.Error(), "only 0 seats remaining")

	// Cancelling the five-seat booking reopens the date.
	require.NoError(t, f.lifecycle.Cancel(ctx, first.ID))
	assert.Equal(t, 3, f.committed(t, "2026-02-01"))

	_, err = f.booking.CreateBooking(ctx, f.bookingRequest(5, 0))
	assert.NoError(t, err)
}

func TestGetBookingsPaginatesWithTourNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.booking.CreateBooking(ctx, f.bookingRequest(1, 0))
		require.NoError(t, err)
	}

	page, err := f.booking.GetBookings(ctx, &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, "Northern Lights Tour", page.Data[0].TourName)
}
