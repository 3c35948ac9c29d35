package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
	"github.com/royalnordicfi/royalnordic/internal/data/repository"
	"github.com/royalnordicfi/royalnordic/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TourService interface {
	GetTours(ctx context.Context) ([]response.TourResponse, error)
	GetTourByID(ctx context.Context, tourID string) (*response.TourResponse, error)

	// EnsureDefaults seeds the catalog on an empty database so a fresh
	// deployment is bookable without manual setup.
	EnsureDefaults(ctx context.Context) error
}

type tourService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTourService(repo *repository.Repository, log *zap.Logger) TourService {
	return &tourService{
		repo: repo,
		log:  log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) GetTours(ctx context.Context) ([]response.TourResponse, error) {
	tours, err := s.repo.Tour.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list tours", zap.Error(err))
		return nil, fmt.Errorf("list tours: %w", err)
	}

	resp := make([]response.TourResponse, len(tours))
	for i, t := range tours {
		resp[i] = response.TourToResponse(t)
	}
	return resp, nil
}

func (s *tourService) GetTourByID(ctx context.Context, tourID string) (*response.TourResponse, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tour id %s", entity.ErrInvalidInput, tourID)
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) EnsureDefaults(ctx context.Context) error {
	count, err := s.repo.Tour.Count(ctx)
	if err != nil {
		return fmt.Errorf("count tours: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	defaults := []*entity.Tour{
		{
			Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Name:        "Northern Lights Tour",
			Description: "Small-group aurora hunting trip with a local guide, warm drinks and photos included.",
			AdultPrice:  179,
			ChildPrice:  149,
			MaxCapacity: 8,
			SeasonStart: "10-01",
			SeasonEnd:   "04-15",
		},
		{
			Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Name:        "Snowshoe Rental",
			Description: "Full-day snowshoe rental with route suggestions for the surrounding fells.",
			AdultPrice:  89,
			ChildPrice:  69,
			MaxCapacity: 6,
			SeasonStart: "11-01",
			SeasonEnd:   "04-15",
		},
	}

	for _, tour := range defaults {
		if err := s.repo.Tour.Create(ctx, tour); err != nil {
			return fmt.Errorf("seed tour %s: %w", tour.Name, err)
		}
		s.log.Info("Seeded default tour",
			zap.String("tour_id", tour.ID.String()),
			zap.String("name", tour.Name),
		)
	}

	return nil
}
