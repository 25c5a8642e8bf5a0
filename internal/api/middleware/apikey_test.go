package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tradepulse/Social-Trading-Backend/internal/api/middleware"
	"github.com/tradepulse/Social-Trading-Backend/internal/api/response"
)

func callWithKey(t *testing.T, key string, withHeader bool) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.APIKeyMiddleware(next)

	req := httptest.NewRequest(http.MethodPost, "/api/sync/account-activities", nil)
	if withHeader {
		req.Header.Set("X-API-Key", key)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()

	var body response.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	return body
}

func TestAPIKeyMiddleware(t *testing.T) {
	t.Run("valid key passes through", func(t *testing.T) {
		t.Setenv("INTERNAL_API_KEY", "test-key-123")

		rec := callWithKey(t, "test-key-123", true)
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		t.Setenv("INTERNAL_API_KEY", "test-key-123")

		rec := callWithKey(t, "", false)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
		if body := decodeError(t, rec); body.Details != "Missing API key" {
			t.Errorf("Expected missing-key detail, got %v", body.Details)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		t.Setenv("INTERNAL_API_KEY", "test-key-123")

		rec := callWithKey(t, "wrong-key", true)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
		if body := decodeError(t, rec); body.Details != "Invalid API key" {
			t.Errorf("Expected invalid-key detail, got %v", body.Details)
		}
	})

	t.Run("unconfigured server", func(t *testing.T) {
		t.Setenv("INTERNAL_API_KEY", "")

		rec := callWithKey(t, "any-key", true)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", rec.Code)
		}
	})
}
