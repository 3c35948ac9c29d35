package response

type DateRemaining struct {
	Date      string `json:"date"`
	Remaining int    `json:"remaining"`
}

type AvailabilityResponse struct {
	TourID string          `json:"tour_id"`
	Dates  []DateRemaining `json:"dates"`
}
