package adaptor

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/royalnordicfi/royalnordic/internal/dto/request"
	"github.com/royalnordicfi/royalnordic/internal/usecase"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"go.uber.org/zap"
)

// signatureHeader carries the hex HMAC-SHA256 of the raw request body, keyed
// with the shared webhook secret.
const signatureHeader = "X-Webhook-Signature"

const maxWebhookBody = 64 * 1024

type WebhookHandler struct {
	lifecycle usecase.LifecycleService
	secret    string
	log       *zap.Logger
}

func NewWebhookHandler(lifecycle usecase.LifecycleService, secret string, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		lifecycle: lifecycle,
		secret:    secret,
		log:       log.With(zap.String("handler", "webhook")),
	}
}

// HandlePaymentWebhook handles POST /api/payments/webhook. The provider
// retries on non-2xx, so only genuinely retryable failures return errors.
func (h *WebhookHandler) HandlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Unreadable request body", nil)
		return
	}

	if !h.verifySignature(body, r.Header.Get(signatureHeader)) {
		h.log.Warn("Webhook with bad signature", zap.String("remote", r.RemoteAddr))
		utils.ResponseUnauthorized(w, "Invalid signature")
		return
	}

	var req request.PaymentWebhookRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.lifecycle.ProcessWebhook(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "process payment webhook")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *WebhookHandler) verifySignature(body []byte, got string) bool {
	if h.secret == "" || got == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(got))
}
