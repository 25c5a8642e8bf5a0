package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/tradepulse/Social-Trading-Backend/internal/api/response"
)

// APIKeyMiddleware guards mutating endpoints with the shared internal API
// key. The expected key is read from INTERNAL_API_KEY on each request so
// tests can rotate it; clients send it in the X-API-Key header.
// Returns 401 Unauthorized on a missing or mismatched key.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusInternalServerError, "server misconfigured", "API key not configured")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
