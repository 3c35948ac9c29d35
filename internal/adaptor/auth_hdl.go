package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/royalnordicfi/royalnordic/internal/dto/request"
	"github.com/royalnordicfi/royalnordic/internal/usecase"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Login handles POST /api/admin/login (public)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "admin login")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// Setup handles POST /api/admin/setup (public, first run only)
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req request.AdminSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.Setup(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "admin setup")
		return
	}

	utils.ResponseCreated(w, "success", nil)
}
