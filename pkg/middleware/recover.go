package middleware

import (
	"net/http"

	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"go.uber.org/zap"
)

// Recover turns handler panics into logged 500s instead of dropped
// connections.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Panic recovered",
						zap.Any("error", rec),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)
					utils.ResponseInternalError(w, "Something went wrong")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
