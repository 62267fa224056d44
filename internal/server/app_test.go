package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvolkov8/eventide/internal/cryptox"
	"github.com/dvolkov8/eventide/internal/logging"
	"github.com/dvolkov8/eventide/internal/server/auth"
	"github.com/dvolkov8/eventide/internal/server/config"
	"github.com/dvolkov8/eventide/internal/server/repositories/repomanager"
	"github.com/dvolkov8/eventide/internal/server/services"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		EndpointAddrHTTP: ":0",
		SecretKey:        "test-secret",
		AccessTokenTTL:   time.Minute,
		RefreshTokenTTL:  time.Hour,
		BcryptCost:       cryptox.DefaultBcryptCost,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	issuer := auth.NewIssuer([]byte(cfg.SecretKey))
	repos := repomanager.NewPostgresRepositoryManager()
	hasher := cryptox.NewBcryptHasher(cfg.BcryptCost)

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		issuer:       issuer,
		authService:  services.NewAuthService(db, repos, hasher, issuer, cfg),
		eventService: services.NewEventService(db, repos),
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	router := app.Router()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/auth/logout-all"},
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodPut, "/api/v1/users/credentials"},
		{http.MethodPut, "/api/v1/users/roles"},
		{http.MethodGet, "/api/v1/events"},
		{http.MethodPost, "/api/v1/events"},
		{http.MethodPut, "/api/v1/events/e1"},
		{http.MethodDelete, "/api/v1/events/e1"},
	}

	for _, route := range protected {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestRouter_ForgedTokenRejected(t *testing.T) {
	app := newTestApp(t)
	router := app.Router()

	other := auth.NewIssuer([]byte("different-secret"))
	forged, err := other.Sign("u1", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Authorization", "Bearer "+forged)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ValidationStopsBeforeStorage(t *testing.T) {
	app := newTestApp(t)
	router := app.Router()

	// no sqlmock expectations are set: a storage hit would fail the test
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"username":"ab","password":"secret"}`))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t)
	router := app.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := newTestApp(t)
	router := app.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
