package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dvolkov8/eventide/internal/logging"
	"github.com/dvolkov8/eventide/internal/server/middleware"
	"github.com/dvolkov8/eventide/internal/server/services"
	"github.com/dvolkov8/eventide/internal/validation"
	"github.com/dvolkov8/eventide/pkg/api"
)

// AuthService is the session-lifecycle surface the auth endpoints need.
// Implemented by services.AuthService.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*services.AuthResult, error)
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID string) error
}

// AuthHandler serves /api/v1/auth/*.
type AuthHandler struct {
	logger         logging.Logger
	auth           AuthService
	accessTokenTTL time.Duration
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(logger logging.Logger, auth AuthService, accessTokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{logger: logger, auth: auth, accessTokenTTL: accessTokenTTL}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.auth.Register(ctx, req.Username, req.Password)
	if err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	h.logger.Info(ctx, "user registered", "user_id", res.UserID, "username", req.Username)
	sendJSON(w, h.tokenResponse(res), http.StatusCreated)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	h.logger.Info(ctx, "user logged in", "user_id", res.UserID)
	sendJSON(w, h.tokenResponse(res), http.StatusOK)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.RefreshToken == "" {
		sendError(w, "refresh_token is required", http.StatusBadRequest)
		return
	}

	access, err := h.auth.Refresh(ctx, req.RefreshToken)
	if err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	sendJSON(w, api.RefreshResponse{
		AccessToken: access,
		ExpiresIn:   int64(h.accessTokenTTL.Seconds()),
	}, http.StatusOK)
}

// Logout handles POST /api/v1/auth/logout. Logging out an unknown token
// succeeds; the end state is the same.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.RefreshToken == "" {
		sendError(w, "refresh_token is required", http.StatusBadRequest)
		return
	}

	if err := h.auth.Logout(ctx, req.RefreshToken); err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LogoutAll handles POST /api/v1/auth/logout-all (authenticated). It ends
// every session of the calling user.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middleware.UserID(ctx)
	if userID == "" {
		sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.auth.LogoutAll(ctx, userID); err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	h.logger.Info(ctx, "all sessions ended", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) tokenResponse(res *services.AuthResult) api.TokenResponse {
	return api.TokenResponse{
		UserID:       res.UserID,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    int64(h.accessTokenTTL.Seconds()),
	}
}
