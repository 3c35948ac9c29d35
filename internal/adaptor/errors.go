package adaptor

import (
	"errors"
	"net/http"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
	"github.com/royalnordicfi/royalnordic/internal/usecase"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError translates service errors to HTTP responses. Expected
// business outcomes map by type; anything unrecognized is a fault, logged at
// error level and returned as a 500 without leaking its message.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var notBookable *entity.NotBookableError
	var insufficient *entity.InsufficientCapacityError

	switch {
	case errors.Is(err, entity.ErrNotFound):
		log.Warn(operation+" failed", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrInvalidInput):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &notBookable):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), map[string]string{
			"date":   notBookable.Date,
			"reason": string(notBookable.Reason),
		})

	case errors.As(err, &insufficient):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), map[string]int{
			"requested": insufficient.Requested,
			"remaining": insufficient.Remaining,
		})

	case errors.Is(err, entity.ErrCapacityBelowCommitted),
		errors.Is(err, entity.ErrAlreadyTerminal):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, entity.ErrContentionTimeout):
		log.Warn(operation+" timed out on contention", zap.Error(err))
		utils.ResponseUnavailable(w, "The date is busy right now, please retry")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" denied", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid credentials")

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Something went wrong")
	}
}
