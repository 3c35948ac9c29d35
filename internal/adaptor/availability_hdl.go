package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/royalnordicfi/royalnordic/internal/dto/request"
	"github.com/royalnordicfi/royalnordic/internal/usecase"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailability handles GET /api/availability/{tourID} (public)
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourID")
	if tourID == "" {
		utils.ResponseBadRequest(w, "Tour ID is required", nil)
		return
	}

	query := r.URL.Query()
	availability, err := h.service.GetAvailability(r.Context(), tourID,
		query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		writeServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// SetCapacity handles PUT /api/admin/availability (admin only)
func (h *AvailabilityHandler) SetCapacity(w http.ResponseWriter, r *http.Request) {
	var req request.SetCapacityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetCapacity(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "set capacity")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
