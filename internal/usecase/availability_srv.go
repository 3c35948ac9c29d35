package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
	"github.com/royalnordicfi/royalnordic/internal/data/repository"
	"github.com/royalnordicfi/royalnordic/internal/dto/request"
	"github.com/royalnordicfi/royalnordic/internal/dto/response"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxCalendarDays bounds a single availability query.
const maxCalendarDays = 366

type AvailabilityService interface {
	// GetAvailability returns remaining seats per date in [startDate, endDate].
	// Dates the ledger has never seen report the tour's full capacity; a tour
	// with no bookings needs no rows to be bookable. Empty bounds default to
	// a 90-day window from today.
	GetAvailability(ctx context.Context, tourID, startDate, endDate string) (*response.AvailabilityResponse, error)

	// SetCapacity overrides one date's capacity. Refuses to drop capacity
	// below the seats already committed; never touches the committed count.
	SetCapacity(ctx context.Context, req *request.SetCapacityRequest) error
}

type availabilityService struct {
	repo   *repository.Repository
	season *SeasonPolicy
	log    *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, season *SeasonPolicy, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:   repo,
		season: season,
		log:    log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetAvailability(ctx context.Context, tourID, startDate, endDate string) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tour id %s", entity.ErrInvalidInput, tourID)
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if startDate == "" {
		startDate = s.season.Today()
	}
	start, err := entity.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", entity.ErrInvalidInput)
	}

	if endDate == "" {
		endDate = start.AddDate(0, 0, 90).Format(entity.DateLayout)
	}
	end, err := entity.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", entity.ErrInvalidInput)
	}

	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", entity.ErrInvalidInput)
	}
	if end.Sub(start) > maxCalendarDays*24*time.Hour {
		return nil, fmt.Errorf("%w: date range exceeds %d days", entity.ErrInvalidInput, maxCalendarDays)
	}

	rows, err := s.repo.Availability.FindRange(ctx, id, startDate, endDate)
	if err != nil {
		s.log.Error("Failed to read availability range",
			zap.Error(err),
			zap.String("tour_id", tourID),
			zap.String("start_date", startDate),
			zap.String("end_date", endDate),
		)
		return nil, fmt.Errorf("read availability: %w", err)
	}

	// Merge ledger rows over the full calendar window. A date without a row
	// has the tour's default capacity and nothing committed.
	byDate := make(map[string]entity.TourDate, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	resp := &response.AvailabilityResponse{TourID: tourID}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(entity.DateLayout)
		remaining := tour.MaxCapacity
		if row, ok := byDate[date]; ok {
			remaining = row.Remaining()
		}
		resp.Dates = append(resp.Dates, response.DateRemaining{Date: date, Remaining: remaining})
	}

	return resp, nil
}

func (s *availabilityService) SetCapacity(ctx context.Context, req *request.SetCapacityRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set capacity validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", entity.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(req.TourID)
	if err != nil {
		return fmt.Errorf("%w: invalid tour id %s", entity.ErrInvalidInput, req.TourID)
	}

	// The tour must exist; capacity rows for unknown tours would be orphans.
	if _, err := s.repo.Tour.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Availability.SetCapacity(ctx, id, req.Date, req.Capacity); err != nil {
		return err
	}

	s.log.Info("Capacity updated",
		zap.String("tour_id", req.TourID),
		zap.String("date", req.Date),
		zap.Int("capacity", req.Capacity),
	)
	return nil
}
