package wire

import (
	"github.com/royalnordicfi/royalnordic/internal/adaptor"
	"github.com/royalnordicfi/royalnordic/pkg/middleware"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/bookings - reserve seats and create a pending booking
	r.Post("/api/bookings", bookingHandler.CreateBooking)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AdminAuth(config.JWT.Secret, log))

		// GET /api/admin/bookings - list bookings with tour names
		r.Get("/", bookingHandler.GetBookings)

		// GET /api/admin/bookings/{id} - view one booking
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// PUT /api/admin/bookings/{id}/cancel - cancel and release seats
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)

		// PUT /api/admin/bookings/{id}/reinstate - revive through the ledger
		r.Put("/{id}/reinstate", bookingHandler.ReinstateBooking)
	})
}
