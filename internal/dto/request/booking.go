package request

type CreateBookingRequest struct {
	TourID        string `json:"tour_id" validate:"required,uuid"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Adults        int    `json:"adults" validate:"gte=0"`
	Children      int    `json:"children" validate:"gte=0"`
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=200"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"max=40"`

	// TotalPrice is the total the client displayed. It is cross-checked
	// against the server-side computation and rejected on mismatch; the
	// stored price is always the server's.
	TotalPrice float64 `json:"total_price" validate:"gte=0"`

	SpecialRequests string `json:"special_requests" validate:"max=2000"`
}
