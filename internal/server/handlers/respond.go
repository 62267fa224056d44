// Package handlers implements the HTTP endpoints: authentication, account
// management, calendar events, and health. Handlers decode pkg/api bodies,
// call a service, and map domain errors onto HTTP statuses.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dvolkov8/eventide/internal/common"
	"github.com/dvolkov8/eventide/internal/logging"
	"github.com/dvolkov8/eventide/pkg/api"
)

func sendJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, api.ErrorResponse{Error: message}, status)
}

// sendDomainError maps a service error onto an HTTP status and a uniform
// error body. The errorCode field carries the field tag (username, password,
// refreshToken, role) so the UI can attribute the failure. Infrastructure
// errors are logged and hidden behind a generic 500.
func sendDomainError(ctx context.Context, w http.ResponseWriter, logger logging.Logger, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Error(ctx, "request failed", "error", err)
		sendJSON(w, api.ErrorResponse{Error: "internal server error"}, status)
		return
	}
	sendJSON(w, api.ErrorResponse{Error: err.Error(), ErrorCode: common.Field(err)}, status)
}

// statusFromError maps the error taxonomy onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorExpired),
		errors.Is(err, common.ErrorInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
