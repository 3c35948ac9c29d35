package repository

import (
	"github.com/royalnordicfi/royalnordic/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tour         TourRepository
	Availability AvailabilityRepository
	Booking      BookingRepository
	Admin        AdminRepository
}

// NewRepository wires the Postgres-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tour:         NewTourRepository(db, log),
		Availability: NewAvailabilityRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Admin:        NewAdminRepository(db, log),
	}
}

// NewMemoryRepository wires the in-process repositories. Suitable for
// single-instance deployments and tests; state does not survive restarts.
func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		Tour:         NewMemoryTourRepository(),
		Availability: NewMemoryAvailabilityRepository(),
		Booking:      NewMemoryBookingRepository(),
		Admin:        NewMemoryAdminRepository(),
	}
}
