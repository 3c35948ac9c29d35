package wire

import (
	"github.com/royalnordicfi/royalnordic/internal/adaptor"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public: login issues the JWT; setup only works before an admin exists.
	r.Post("/api/admin/login", authHandler.Login)
	r.Post("/api/admin/setup", authHandler.Setup)
}
