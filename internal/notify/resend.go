package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"

	"go.uber.org/zap"
)

const resendEndpoint = "https://api.resend.com/emails"

// EmailNotifier sends booking emails through the Resend HTTP API.
type EmailNotifier struct {
	apiKey string
	from   string
	client *http.Client
	log    *zap.Logger
}

func NewEmailNotifier(apiKey, from string, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log.With(zap.String("notifier", "email")),
	}
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (n *EmailNotifier) BookingReceived(ctx context.Context, booking *entity.Booking, tourName string) error {
	subject := fmt.Sprintf("Booking received - %s", booking.OrderID)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your booking for <strong>%s</strong> on %s "+
			"(%d adults, %d children, total %.2f €).</p>"+
			"<p>Your reference is <strong>%s</strong>. We will confirm as soon as your payment completes.</p>",
		booking.CustomerName, tourName, booking.Date,
		booking.Adults, booking.Children, booking.TotalPrice, booking.OrderID,
	)
	return n.send(ctx, booking.CustomerEmail, subject, body)
}

func (n *EmailNotifier) BookingConfirmed(ctx context.Context, booking *entity.Booking, tourName string) error {
	subject := fmt.Sprintf("Booking confirmed - %s", booking.OrderID)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking for <strong>%s</strong> on %s is confirmed. "+
			"See you in Lapland!</p><p>Reference: <strong>%s</strong></p>",
		booking.CustomerName, tourName, booking.Date, booking.OrderID,
	)
	return n.send(ctx, booking.CustomerEmail, subject, body)
}

func (n *EmailNotifier) BookingCancelled(ctx context.Context, booking *entity.Booking, tourName string) error {
	subject := fmt.Sprintf("Booking cancelled - %s", booking.OrderID)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking for <strong>%s</strong> on %s has been cancelled.</p>"+
			"<p>Reference: <strong>%s</strong></p>",
		booking.CustomerName, tourName, booking.Date, booking.OrderID,
	)
	return n.send(ctx, booking.CustomerEmail, subject, body)
}

func (n *EmailNotifier) send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(emailPayload{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("send email: provider returned %d: %s", resp.StatusCode, string(body))
	}

	n.log.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
