package request

// Payment provider event types the webhook consumes.
const (
	WebhookCheckoutCompleted = "checkout.completed"
	WebhookCheckoutFailed    = "checkout.failed"
	WebhookCheckoutExpired   = "checkout.expired"
)

// PaymentWebhookRequest is the provider's asynchronous payment outcome for a
// booking. The booking reference travels in the checkout metadata.
type PaymentWebhookRequest struct {
	Type             string `json:"type" validate:"required,oneof=checkout.completed checkout.failed checkout.expired"`
	BookingID        string `json:"booking_id" validate:"required,uuid"`
	PaymentReference string `json:"payment_reference" validate:"max=200"`
}
