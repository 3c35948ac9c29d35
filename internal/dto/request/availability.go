package request

type SetCapacityRequest struct {
	TourID   string `json:"tour_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}
