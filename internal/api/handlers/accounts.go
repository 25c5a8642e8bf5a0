package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradepulse/Social-Trading-Backend/internal/api/request"
	"github.com/tradepulse/Social-Trading-Backend/internal/api/response"
	"github.com/tradepulse/Social-Trading-Backend/internal/apperrors"
	"github.com/tradepulse/Social-Trading-Backend/internal/model"
	"github.com/tradepulse/Social-Trading-Backend/internal/service"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
)

// AccountHandler handles HTTP requests for brokerage account endpoints.
type AccountHandler struct {
	accountService *service.AccountService
	client         snaptrade.Client
}

// NewAccountHandler creates a new AccountHandler with the provided dependencies.
func NewAccountHandler(accountService *service.AccountService, client snaptrade.Client) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		client:         client,
	}
}

// SaveAccountsResponse is the per-item + aggregate payload for batch saves.
type SaveAccountsResponse struct {
	Results []model.AccountSaveResult `json:"results"`
	Summary model.AccountSaveSummary  `json:"summary"`
}

// SaveAccounts handles POST requests to upsert a batch of aggregator
// accounts under a connection. Always reports per-item outcome; a single
// account's failure never fails the batch.
//
// Endpoint: POST /api/accounts/save
// Response: 200 OK with SaveAccountsResponse
// Error: 400 Bad Request on invalid body
func (h *AccountHandler) SaveAccounts(w http.ResponseWriter, r *http.Request) {
	var req request.SaveAccounts
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	results, summary := h.accountService.SaveAccounts(req.UserID, req.ConnectionID, req.Accounts)

	response.RespondJSON(w, http.StatusOK, SaveAccountsResponse{
		Results: results,
		Summary: summary,
	})
}

// GetAccount handles GET requests to retrieve a stored brokerage account.
//
// Endpoint: GET /api/accounts/{accountId}
// Response: 200 OK with BrokerageAccount
// Error: 404 Not Found if the account is not stored
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	account, err := h.accountService.GetAccount(accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveAccounts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// ListAccounts handles GET requests to list the user's brokerage accounts at
// the aggregator. Pass-through; nothing is persisted.
//
// Endpoint: GET /api/accounts?userId=&userSecret=
// Response: 200 OK with account array
// Error: 502 Bad Gateway if the aggregator call fails
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	userSecret := r.URL.Query().Get("userSecret")

	if userID == "" || userSecret == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrMissingCredentials.Error(), "")
		return
	}

	accounts, err := h.client.ListAccounts(r.Context(), userID, userSecret)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrieveAccount.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, accounts)
}

// GetAccountDetails handles GET requests to fetch an account's live detail
// record from the aggregator. Pass-through; the stored record is served by
// GetAccount.
//
// Endpoint: GET /api/accounts/{accountId}/details?userId=&userSecret=
// Response: 200 OK with the aggregator account payload
// Error: 502 Bad Gateway if the aggregator call fails
func (h *AccountHandler) GetAccountDetails(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	userID := r.URL.Query().Get("userId")
	userSecret := r.URL.Query().Get("userSecret")

	if userID == "" || userSecret == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrMissingCredentials.Error(), "")
		return
	}

	account, err := h.client.GetAccountDetails(r.Context(), userID, userSecret, accountID)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrieveAccount.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// ListPositions handles GET requests to fetch an account's equity positions
// from the aggregator. Pass-through; nothing is persisted.
//
// Endpoint: GET /api/accounts/{accountId}/positions?userId=&userSecret=
// Response: 200 OK with position array
// Error: 502 Bad Gateway if the aggregator call fails
func (h *AccountHandler) ListPositions(w http.ResponseWriter, r *http.Request) {
	h.listPositions(w, r, h.client.ListPositions)
}

// ListOptionPositions handles GET requests for option positions.
//
// Endpoint: GET /api/accounts/{accountId}/options?userId=&userSecret=
func (h *AccountHandler) ListOptionPositions(w http.ResponseWriter, r *http.Request) {
	h.listPositions(w, r, h.client.ListOptionPositions)
}

func (h *AccountHandler) listPositions(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, userID, userSecret, accountID string) ([]snaptrade.Position, error)) {
	accountID := chi.URLParam(r, "accountId")
	userID := r.URL.Query().Get("userId")
	userSecret := r.URL.Query().Get("userSecret")

	if userID == "" || userSecret == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrMissingCredentials.Error(), "")
		return
	}

	positions, err := fetch(r.Context(), userID, userSecret, accountID)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}
