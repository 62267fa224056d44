// Package server initializes and runs the Eventide HTTP server: it opens the
// database, runs migrations, wires services and handlers, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvolkov8/eventide/internal/cryptox"
	"github.com/dvolkov8/eventide/internal/logging"
	"github.com/dvolkov8/eventide/internal/server/auth"
	"github.com/dvolkov8/eventide/internal/server/config"
	"github.com/dvolkov8/eventide/internal/server/handlers"
	"github.com/dvolkov8/eventide/internal/server/middleware"
	"github.com/dvolkov8/eventide/internal/server/repositories/repomanager"
	"github.com/dvolkov8/eventide/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// App ties together the configuration, storage and HTTP transport.
type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	issuer *auth.Issuer

	authService  *services.AuthService
	eventService *services.EventService
}

// NewApp opens the database, runs migrations, and constructs the service
// graph. The caller owns the returned App and must call Run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	issuer := auth.NewIssuer([]byte(cfg.SecretKey))
	hasher := cryptox.NewBcryptHasher(cfg.BcryptCost)

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		issuer:       issuer,
		authService:  services.NewAuthService(db, repos, hasher, issuer, cfg),
		eventService: services.NewEventService(db, repos),
	}, nil
}

// Router assembles the route table and the middleware chain.
func (app *App) Router() http.Handler {
	authHandler := handlers.NewAuthHandler(app.logger, app.authService, app.config.AccessTokenTTL)
	userHandler := handlers.NewUserHandler(app.logger, app.authService)
	eventHandler := handlers.NewEventHandler(app.logger, app.eventService)
	healthHandler := handlers.NewHealthHandler(app.db)

	authed := middleware.Auth(app.logger, app.issuer)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.Handle("POST /api/v1/auth/logout-all", authed(http.HandlerFunc(authHandler.LogoutAll)))

	mux.Handle("GET /api/v1/users/me", authed(http.HandlerFunc(userHandler.Get)))
	mux.Handle("PUT /api/v1/users/credentials", authed(http.HandlerFunc(userHandler.UpdateCredentials)))
	mux.Handle("PUT /api/v1/users/roles", authed(http.HandlerFunc(userHandler.AssignRoles)))

	mux.Handle("GET /api/v1/events", authed(http.HandlerFunc(eventHandler.List)))
	mux.Handle("POST /api/v1/events", authed(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("PUT /api/v1/events/{id}", authed(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /api/v1/events/{id}", authed(http.HandlerFunc(eventHandler.Delete)))

	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	var handler http.Handler = mux
	handler = middleware.Logging(app.logger)(handler)
	handler = middleware.Recovery(app.logger)(handler)
	return handler
}

// Run serves HTTP until ctx is cancelled or an OS signal arrives, then
// drains in-flight requests and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		app.logger.Info(context.Background(), "shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}
