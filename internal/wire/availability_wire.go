package wire

import (
	"github.com/royalnordicfi/royalnordic/internal/adaptor"
	"github.com/royalnordicfi/royalnordic/pkg/middleware"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/availability/{tourID}?start_date&end_date - remaining per date
	r.Get("/api/availability/{tourID}", availabilityHandler.GetAvailability)

	// ==================== ADMIN ROUTES ====================
	// PUT /api/admin/availability - set one date's capacity
	r.With(middleware.AdminAuth(config.JWT.Secret, log)).
		Put("/api/admin/availability", availabilityHandler.SetCapacity)
}
