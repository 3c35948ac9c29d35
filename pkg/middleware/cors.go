package middleware

import (
	"net/http"
)

// CORS allows cross-origin requests from the configured origins. With no
// origins configured it falls back to the production site and local dev hosts.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"https://royalnordic.fi":     true,
		"https://www.royalnordic.fi": true,
		"http://localhost:5173":      true,
		"http://127.0.0.1:5173":      true,
	}

	if len(origins) > 0 {
		allowedOrigins = make(map[string]bool, len(origins))
		for _, o := range origins {
			allowedOrigins[o] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && allowedOrigins[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
