package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradepulse/Social-Trading-Backend/internal/api/request"
	"github.com/tradepulse/Social-Trading-Backend/internal/api/response"
	"github.com/tradepulse/Social-Trading-Backend/internal/apperrors"
	"github.com/tradepulse/Social-Trading-Backend/internal/model"
	"github.com/tradepulse/Social-Trading-Backend/internal/service"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
)

// ConnectionHandler handles HTTP requests for brokerage connection endpoints.
type ConnectionHandler struct {
	accountService *service.AccountService
	client         snaptrade.Client
}

// NewConnectionHandler creates a new ConnectionHandler with the provided dependencies.
func NewConnectionHandler(accountService *service.AccountService, client snaptrade.Client) *ConnectionHandler {
	return &ConnectionHandler{
		accountService: accountService,
		client:         client,
	}
}

// SaveConnectionResponse wraps the persisted connection record.
type SaveConnectionResponse struct {
	Data model.BrokerageConnection `json:"data"`
}

// SaveConnection handles POST requests to upsert a brokerage connection.
//
// Endpoint: POST /api/connections/save
// Response: 200 OK with SaveConnectionResponse
// Error: 400 Bad Request on invalid body
// Error: 500 Internal Server Error if the upsert fails
func (h *ConnectionHandler) SaveConnection(w http.ResponseWriter, r *http.Request) {
	var req request.SaveConnection
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	conn, err := h.accountService.SaveConnection(req.UserID, req.AuthorizationID, req.BrokerageName, req.ConnectionData)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveConnection.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, SaveConnectionResponse{Data: conn})
}

// ListConnections handles GET requests to list the user's brokerage
// authorizations at the aggregator. Pass-through; nothing is persisted.
//
// Endpoint: GET /api/connections?userId=&userSecret=
// Response: 200 OK with connection array
// Error: 502 Bad Gateway if the aggregator call fails
func (h *ConnectionHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	userSecret := r.URL.Query().Get("userSecret")

	if userID == "" || userSecret == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrMissingCredentials.Error(), "")
		return
	}

	connections, err := h.client.ListConnections(r.Context(), userID, userSecret)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToListConnections.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, connections)
}

// DeleteConnection handles DELETE requests to remove a brokerage
// authorization at the aggregator.
//
// Endpoint: DELETE /api/connections/{connectionId}?userId=&userSecret=
// Response: 204 No Content
// Error: 502 Bad Gateway if the aggregator call fails
func (h *ConnectionHandler) DeleteConnection(w http.ResponseWriter, r *http.Request) {
	connectionID := chi.URLParam(r, "connectionId")
	userID := r.URL.Query().Get("userId")
	userSecret := r.URL.Query().Get("userSecret")

	if userID == "" || userSecret == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrMissingCredentials.Error(), "")
		return
	}

	if err := h.client.DeleteConnection(r.Context(), userID, userSecret, connectionID); err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToDeleteConnection.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// CreatePortalURL handles POST requests to issue a connection-portal login
// link for the user.
//
// Endpoint: POST /api/connections/portal
// Response: 200 OK with the portal redirect payload
// Error: 502 Bad Gateway if the aggregator call fails
func (h *ConnectionHandler) CreatePortalURL(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePortalURL
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	portal, err := h.client.CreateConnectionPortalURL(r.Context(), req.UserID, req.UserSecret, req.Broker)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToCreatePortalURL.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portal)
}
