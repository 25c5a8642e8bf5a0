package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradepulse/Social-Trading-Backend/internal/api/response"
	"github.com/tradepulse/Social-Trading-Backend/internal/apperrors"
	"github.com/tradepulse/Social-Trading-Backend/internal/service"
)

// UserHandler handles HTTP requests for user registration and deletion.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler with the provided service dependency.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterUserResponse carries the new user's ids and the one-time
// aggregator secret. The secret is returned exactly once; callers must hand
// it to the client session.
type RegisterUserResponse struct {
	ID              string `json:"id"`
	SnaptradeUserID string `json:"snaptradeUserId"`
	UserSecret      string `json:"userSecret"`
}

// RegisterUser handles POST requests to create an application user and
// register them with the aggregator.
//
// Endpoint: POST /api/users/register
// Response: 201 Created with RegisterUserResponse
// Error: 502 Bad Gateway if aggregator registration fails
// Error: 500 Internal Server Error if local persistence fails
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Register(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRegisterUser.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, RegisterUserResponse{
		ID:              user.ID,
		SnaptradeUserID: user.SnaptradeUserID,
		UserSecret:      user.UserSecret,
	})
}

// DeleteUser handles DELETE requests to remove a user at the aggregator and
// locally.
//
// Endpoint: DELETE /api/users/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if the user ID is invalid (validated by middleware)
// Error: 404 Not Found if the user does not exist
// Error: 502 Bad Gateway if aggregator deletion fails
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uuid")

	if err := h.userService.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToDeleteUser.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
