package response

import (
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
)

type BookingResponse struct {
	ID               string    `json:"id"`
	OrderID          string    `json:"order_id"`
	TourID           string    `json:"tour_id"`
	TourName         string    `json:"tour_name,omitempty"`
	Date             string    `json:"date"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	CustomerPhone    string    `json:"customer_phone,omitempty"`
	Adults           int       `json:"adults"`
	Children         int       `json:"children"`
	Seats            int       `json:"seats"`
	TotalPrice       float64   `json:"total_price"`
	Status           string    `json:"status"`
	PaymentReference string    `json:"payment_reference,omitempty"`
	SpecialRequests  string    `json:"special_requests,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func BookingToResponse(b *entity.Booking, tourName string) BookingResponse {
	return BookingResponse{
		ID:               b.ID.String(),
		OrderID:          b.OrderID,
		TourID:           b.TourID.String(),
		TourName:         tourName,
		Date:             b.Date,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		CustomerPhone:    b.CustomerPhone,
		Adults:           b.Adults,
		Children:         b.Children,
		Seats:            b.Seats(),
		TotalPrice:       b.TotalPrice,
		Status:           b.Status.String(),
		PaymentReference: b.PaymentReference,
		SpecialRequests:  b.SpecialRequests,
		CreatedAt:        b.CreatedAt,
	}
}
