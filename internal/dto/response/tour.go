package response

import "github.com/royalnordicfi/royalnordic/internal/data/entity"

type TourResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	AdultPrice  float64 `json:"adult_price"`
	ChildPrice  float64 `json:"child_price"`
	MaxCapacity int     `json:"max_capacity"`
	SeasonStart string  `json:"season_start,omitempty"`
	SeasonEnd   string  `json:"season_end,omitempty"`
}

func TourToResponse(t *entity.Tour) TourResponse {
	return TourResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		AdultPrice:  t.AdultPrice,
		ChildPrice:  t.ChildPrice,
		MaxCapacity: t.MaxCapacity,
		SeasonStart: t.SeasonStart,
		SeasonEnd:   t.SeasonEnd,
	}
}
