package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tradepulse/Social-Trading-Backend/internal/api/handlers"
	"github.com/tradepulse/Social-Trading-Backend/internal/model"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
	"github.com/tradepulse/Social-Trading-Backend/internal/testutil"
)

func newAccountRouter(t *testing.T, handler *handlers.AccountHandler) *chi.Mux {
	t.Helper()

	r := chi.NewRouter()
	r.Post("/api/accounts/save", handler.SaveAccounts)
	r.Get("/api/accounts/{accountId}", handler.GetAccount)
	r.Get("/api/accounts/{accountId}/positions", handler.ListPositions)
	return r
}

func TestAccountHandler_SaveAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := testutil.NewMockSnaptradeClient()
	handler := handlers.NewAccountHandler(testutil.NewTestAccountService(t, db), client)
	router := newAccountRouter(t, handler)

	balance := 5000.0
	body := map[string]interface{}{
		"userId":       "st-user-1",
		"connectionId": "conn-1",
		"accounts": []snaptrade.Account{
			{
				ID:   "acct-1",
				Name: "TFSA",
				Balance: &snaptrade.AccountBalance{
					Total: &snaptrade.BalanceTotal{Amount: &balance, Currency: "CAD"},
				},
			},
		},
	}

	t.Run("saves batch and reports summary", func(t *testing.T) {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/accounts/save", &buf)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp handlers.SaveAccountsResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.Results) != 1 || !resp.Results[0].Success {
			t.Errorf("Expected one successful result, got %+v", resp.Results)
		}
		if resp.Summary.Success != 1 || resp.Summary.Error != 0 {
			t.Errorf("Expected summary {1 0}, got %+v", resp.Summary)
		}
	})

	t.Run("rejects missing connection id", func(t *testing.T) {
		invalid := map[string]interface{}{"userId": "st-user-1"}
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(invalid); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/accounts/save", &buf)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("saved account is retrievable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/acct-1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var account model.BrokerageAccount
		if err := json.NewDecoder(rec.Body).Decode(&account); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if account.BalanceAmount != 5000 || account.BalanceCurrency != "CAD" {
			t.Errorf("Expected balance 5000 CAD, got %v %s", account.BalanceAmount, account.BalanceCurrency)
		}
	})

	t.Run("unknown account maps to 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/no-such-account", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_ListPositions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	units := 25.0
	client := testutil.NewMockSnaptradeClient()
	client.Positions = []snaptrade.Position{
		{Units: &units, Symbol: &snaptrade.ActivitySymbol{RawSymbol: "VTI"}},
	}
	handler := handlers.NewAccountHandler(testutil.NewTestAccountService(t, db), client)
	router := newAccountRouter(t, handler)

	t.Run("passes positions through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/acct-1/positions?userId=st-user-1&userSecret=sec", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var positions []snaptrade.Position
		if err := json.NewDecoder(rec.Body).Decode(&positions); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(positions) != 1 {
			t.Errorf("Expected 1 position, got %d", len(positions))
		}
	})

	t.Run("requires aggregator credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/acct-1/positions", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}
