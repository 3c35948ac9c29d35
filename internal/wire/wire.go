package wire

import (
	"fmt"
	"net/http"

	"github.com/royalnordicfi/royalnordic/internal/adaptor"
	"github.com/royalnordicfi/royalnordic/internal/data/repository"
	"github.com/royalnordicfi/royalnordic/internal/usecase"
	"github.com/royalnordicfi/royalnordic/pkg/middleware"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds the service graph and the HTTP router on top of it.
func Wiring(repo *repository.Repository, config *utils.Config, notifier usecase.Notifier, logger *zap.Logger) (*App, error) {
	service, err := usecase.NewService(repo, config, notifier, logger)
	if err != nil {
		return nil, fmt.Errorf("build services: %w", err)
	}

	handler := adaptor.NewHandler(service, config.Payment.WebhookSecret, logger)
	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}, nil
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	wireAuth(r, handler.Auth, config, logger)
	wireTour(r, handler.Tour)
	wireAvailability(r, handler.Availability, config, logger)
	wireBooking(r, handler.Booking, config, logger)
	wireWebhook(r, handler.Webhook)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
