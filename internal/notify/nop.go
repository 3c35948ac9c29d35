package notify

import (
	"context"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"

	"go.uber.org/zap"
)

// LogNotifier records would-be emails in the log. Used in development and
// whenever no email API key is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *LogNotifier) BookingReceived(ctx context.Context, booking *entity.Booking, tourName string) error {
	n.log.Info("Booking received notification",
		zap.String("order_id", booking.OrderID),
		zap.String("tour", tourName),
		zap.String("to", booking.CustomerEmail),
	)
	return nil
}

func (n *LogNotifier) BookingConfirmed(ctx context.Context, booking *entity.Booking, tourName string) error {
	n.log.Info("Booking confirmed notification",
		zap.String("order_id", booking.OrderID),
		zap.String("tour", tourName),
		zap.String("to", booking.CustomerEmail),
	)
	return nil
}

func (n *LogNotifier) BookingCancelled(ctx context.Context, booking *entity.Booking, tourName string) error {
	n.log.Info("Booking cancelled notification",
		zap.String("order_id", booking.OrderID),
		zap.String("tour", tourName),
		zap.String("to", booking.CustomerEmail),
	)
	return nil
}
