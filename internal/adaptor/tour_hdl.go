package adaptor

import (
	"net/http"

	"github.com/royalnordicfi/royalnordic/internal/usecase"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TourHandler struct {
	service usecase.TourService
	log     *zap.Logger
}

func NewTourHandler(service usecase.TourService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

// GetTours handles GET /api/tours (public)
func (h *TourHandler) GetTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.service.GetTours(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list tours")
		return
	}

	utils.ResponseSuccess(w, "success", tours)
}

// GetTourByID handles GET /api/tours/{id} (public)
func (h *TourHandler) GetTourByID(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")
	if tourID == "" {
		utils.ResponseBadRequest(w, "Tour ID is required", nil)
		return
	}

	tour, err := h.service.GetTourByID(r.Context(), tourID)
	if err != nil {
		writeServiceError(w, h.log, err, "get tour")
		return
	}

	utils.ResponseSuccess(w, "success", tour)
}
