package usecase

import (
	"fmt"

	"github.com/royalnordicfi/royalnordic/internal/data/repository"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Tour         TourService
	Availability AvailabilityService
	Booking      BookingService
	Lifecycle    LifecycleService
}

func NewService(repo *repository.Repository, config *utils.Config, notifier Notifier, log *zap.Logger) (*Service, error) {
	season, err := NewSeasonPolicy(config.Booking.Timezone, nil)
	if err != nil {
		return nil, fmt.Errorf("build season policy: %w", err)
	}

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Tour:         NewTourService(repo, log),
		Availability: NewAvailabilityService(repo, season, log),
		Booking:      NewBookingService(repo, season, notifier, log),
		Lifecycle:    NewLifecycleService(repo, notifier, config, log),
	}, nil
}
