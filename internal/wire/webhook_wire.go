package wire

import (
	"github.com/royalnordicfi/royalnordic/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWebhook(r chi.Router, webhookHandler *adaptor.WebhookHandler) {
	// Authenticated by the signature header, not by session or JWT.
	r.Post("/api/payments/webhook", webhookHandler.HandlePaymentWebhook)
}
