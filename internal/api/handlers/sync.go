package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tradepulse/Social-Trading-Backend/internal/api/request"
	"github.com/tradepulse/Social-Trading-Backend/internal/api/response"
	"github.com/tradepulse/Social-Trading-Backend/internal/apperrors"
	"github.com/tradepulse/Social-Trading-Backend/internal/service"
)

// SyncHandler handles HTTP requests for the activity ingestion endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the syncService.
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new SyncHandler with the provided service dependency.
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// SyncAccountActivities handles POST requests to ingest one account's
// activity history.
//
// Endpoint: POST /api/sync/account-activities
// Response: 200 OK with SyncResult (SkippedActivities may be nonzero)
// Error: 400 Bad Request on invalid body
// Error: 404 Not Found if the app user does not exist
// Error: 502 Bad Gateway if the aggregator fetch fails
// Error: 500 Internal Server Error otherwise
func (h *SyncHandler) SyncAccountActivities(w http.ResponseWriter, r *http.Request) {
	var req request.SyncAccountActivities
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.syncService.SyncAccountActivities(
		r.Context(),
		req.UserID,
		req.UserSecret,
		req.AccountID,
		req.AppUserID,
		req.FullSync,
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrFailedToFetchActivities) {
			response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToFetchActivities.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSyncActivities.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
