package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvolkov8/eventide/internal/common"
	"github.com/dvolkov8/eventide/internal/server/middleware"
	"github.com/dvolkov8/eventide/internal/server/models"
	"github.com/dvolkov8/eventide/internal/server/services"
	"github.com/dvolkov8/eventide/pkg/api"
)

type mockUserService struct {
	updateOut *models.User
	updateErr error
	updateUpd services.CredentialUpdate

	assignOut *models.User
	assignErr error

	getOut *models.User
	getErr error
}

func (m *mockUserService) UpdateCredentials(ctx context.Context, userID string, upd services.CredentialUpdate) (*models.User, error) {
	m.updateUpd = upd
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updateOut, nil
}

func (m *mockUserService) AssignRoles(ctx context.Context, userID string, roleNames []string) (*models.User, error) {
	if m.assignErr != nil {
		return nil, m.assignErr
	}
	return m.assignOut, nil
}

func (m *mockUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getOut, nil
}

func authedJSON(t *testing.T, method, target, userID string, body any) *http.Request {
	t.Helper()
	req := postJSON(t, target, body)
	req.Method = method
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestUserHandler_Get(t *testing.T) {
	svc := &mockUserService{getOut: &models.User{
		ID:       "u1",
		Username: "alice",
		Roles:    []models.Role{{ID: "1", Name: "user"}, {ID: "3", Name: "admin"}},
	}}
	h := NewUserHandler(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "u1"))

	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, []string{"user", "admin"}, resp.Roles)
}

func TestUserHandler_UpdateCredentials(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockUserService{updateOut: &models.User{ID: "u1", Username: "alice2"}}
		h := NewUserHandler(testLogger(), svc)

		req := authedJSON(t, http.MethodPut, "/api/v1/users/credentials", "u1",
			api.UpdateCredentialsRequest{Username: "alice2"})

		rec := httptest.NewRecorder()
		h.UpdateCredentials(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, services.CredentialUpdate{Username: "alice2"}, svc.updateUpd)
	})

	t.Run("wrong current password maps to 401", func(t *testing.T) {
		svc := &mockUserService{updateErr: common.Unauthorized("password")}
		h := NewUserHandler(testLogger(), svc)

		req := authedJSON(t, http.MethodPut, "/api/v1/users/credentials", "u1",
			api.UpdateCredentialsRequest{Password: "nope", NewPassword: "newpw"})

		rec := httptest.NewRecorder()
		h.UpdateCredentials(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "password", decodeError(t, rec).ErrorCode)
	})

	t.Run("taken username maps to 409", func(t *testing.T) {
		svc := &mockUserService{updateErr: common.Duplicate("username")}
		h := NewUserHandler(testLogger(), svc)

		req := authedJSON(t, http.MethodPut, "/api/v1/users/credentials", "u1",
			api.UpdateCredentialsRequest{Username: "taken"})

		rec := httptest.NewRecorder()
		h.UpdateCredentials(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		h := NewUserHandler(testLogger(), &mockUserService{})

		req := authedJSON(t, http.MethodPut, "/api/v1/users/credentials", "u1",
			api.UpdateCredentialsRequest{})

		rec := httptest.NewRecorder()
		h.UpdateCredentials(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("short new password rejected", func(t *testing.T) {
		h := NewUserHandler(testLogger(), &mockUserService{})

		req := authedJSON(t, http.MethodPut, "/api/v1/users/credentials", "u1",
			api.UpdateCredentialsRequest{Password: "old", NewPassword: "ab"})

		rec := httptest.NewRecorder()
		h.UpdateCredentials(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h := NewUserHandler(testLogger(), &mockUserService{})

		rec := httptest.NewRecorder()
		h.UpdateCredentials(rec, postJSON(t, "/api/v1/users/credentials", api.UpdateCredentialsRequest{Username: "x"}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserHandler_AssignRoles(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockUserService{assignOut: &models.User{
			ID:       "u1",
			Username: "alice",
			Roles:    []models.Role{{ID: "3", Name: "admin"}},
		}}
		h := NewUserHandler(testLogger(), svc)

		req := authedJSON(t, http.MethodPut, "/api/v1/users/roles", "u1",
			api.AssignRolesRequest{Roles: []string{"admin"}})

		rec := httptest.NewRecorder()
		h.AssignRoles(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp api.UserResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, []string{"admin"}, resp.Roles)
	})

	t.Run("unknown role fails the whole batch", func(t *testing.T) {
		svc := &mockUserService{assignErr: common.NotFound("role")}
		h := NewUserHandler(testLogger(), svc)

		req := authedJSON(t, http.MethodPut, "/api/v1/users/roles", "u1",
			api.AssignRolesRequest{Roles: []string{"user", "superuser"}})

		rec := httptest.NewRecorder()
		h.AssignRoles(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "role", decodeError(t, rec).ErrorCode)
	})

	t.Run("empty role list rejected", func(t *testing.T) {
		h := NewUserHandler(testLogger(), &mockUserService{})

		req := authedJSON(t, http.MethodPut, "/api/v1/users/roles", "u1", api.AssignRolesRequest{})

		rec := httptest.NewRecorder()
		h.AssignRoles(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
