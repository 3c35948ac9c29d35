package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsHandler(origins []string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return CORS(origins)(next)
}

func TestCORSConfiguredOriginsReplaceDefaults(t *testing.T) {
	handler := corsHandler([]string{"https://staging.royalnordic.fi"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tours", nil)
	req.Header.Set("Origin", "https://staging.royalnordic.fi")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://staging.royalnordic.fi", rec.Header().Get("Access-Control-Allow-Origin"))

	// The built-in production origin is gone once an override is set.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/tours", nil)
	req.Header.Set("Origin", "https://royalnordic.fi")
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSDefaultsAllowProductionSite(t *testing.T) {
	handler := corsHandler(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tours", nil)
	req.Header.Set("Origin", "https://royalnordic.fi")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://royalnordic.fi", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSUnknownOriginGetsNoAllowHeader(t *testing.T) {
	handler := corsHandler(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tours", nil)
	req.Header.Set("Origin", "https://evil.example")
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	handler := corsHandler(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
