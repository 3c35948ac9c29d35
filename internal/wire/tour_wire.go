package wire

import (
	"github.com/royalnordicfi/royalnordic/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTour(r chi.Router, tourHandler *adaptor.TourHandler) {
	r.Get("/api/tours", tourHandler.GetTours)
	r.Get("/api/tours/{id}", tourHandler.GetTourByID)
}
