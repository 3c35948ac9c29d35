package adaptor

import (
	"github.com/royalnordicfi/royalnordic/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Tour         *TourHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Webhook      *WebhookHandler
}

func NewHandler(service *usecase.Service, webhookSecret string, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Tour:         NewTourHandler(service.Tour, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, service.Lifecycle, log),
		Webhook:      NewWebhookHandler(service.Lifecycle, webhookSecret, log),
	}
}
