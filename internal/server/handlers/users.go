package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dvolkov8/eventide/internal/logging"
	"github.com/dvolkov8/eventide/internal/server/middleware"
	"github.com/dvolkov8/eventide/internal/server/models"
	"github.com/dvolkov8/eventide/internal/server/services"
	"github.com/dvolkov8/eventide/internal/validation"
	"github.com/dvolkov8/eventide/pkg/api"
)

// UserService is the account-management surface the user endpoints need.
// Implemented by services.AuthService.
type UserService interface {
	UpdateCredentials(ctx context.Context, userID string, upd services.CredentialUpdate) (*models.User, error)
	AssignRoles(ctx context.Context, userID string, roleNames []string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// UserHandler serves /api/v1/users/*. All routes require authentication;
// the user id comes from the verified access token, never from the body.
type UserHandler struct {
	logger logging.Logger
	users  UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(logger logging.Logger, users UserService) *UserHandler {
	return &UserHandler{logger: logger, users: users}
}

// Get handles GET /api/v1/users/me.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middleware.UserID(ctx)
	if userID == "" {
		sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetUser(ctx, userID)
	if err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	sendJSON(w, userResponse(user), http.StatusOK)
}

// UpdateCredentials handles PUT /api/v1/users/credentials.
func (h *UserHandler) UpdateCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middleware.UserID(ctx)
	if userID == "" {
		sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.UpdateCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" && req.Password == "" {
		sendError(w, "nothing to update", http.StatusBadRequest)
		return
	}
	if req.Username != "" {
		if err := validation.ValidateUsername(req.Username); err != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.Password != "" {
		if err := validation.ValidatePassword(req.NewPassword); err != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	user, err := h.users.UpdateCredentials(ctx, userID, services.CredentialUpdate{
		Username:    req.Username,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	h.logger.Info(ctx, "credentials updated", "user_id", userID)
	sendJSON(w, userResponse(user), http.StatusOK)
}

// AssignRoles handles PUT /api/v1/users/roles. The batch is all-or-nothing:
// one unknown role name fails the whole request.
func (h *UserHandler) AssignRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middleware.UserID(ctx)
	if userID == "" {
		sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.AssignRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Roles) == 0 {
		sendError(w, "roles is required", http.StatusBadRequest)
		return
	}

	user, err := h.users.AssignRoles(ctx, userID, req.Roles)
	if err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	h.logger.Info(ctx, "roles assigned", "user_id", userID, "roles", req.Roles)
	sendJSON(w, userResponse(user), http.StatusOK)
}

func userResponse(user *models.User) api.UserResponse {
	roles := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		roles[i] = role.Name
	}
	return api.UserResponse{ID: user.ID, Username: user.Username, Roles: roles}
}
