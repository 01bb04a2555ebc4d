package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/finance-tracker-be/internal/alerts"
	"github.com/hongminglow/finance-tracker-be/internal/auth"
	"github.com/hongminglow/finance-tracker-be/internal/config"
	"github.com/hongminglow/finance-tracker-be/internal/http/handlers"
	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/middleware"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, logger *applog.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, store, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{inner: httpServer}
}

// NewHandler builds the full HTTP handler tree.
func NewHandler(cfg config.Config, store storage.Store, logger *applog.Logger) http.Handler {
	mux := http.NewServeMux()
	handlers.NewHealthHandler(store, cfg.DataBackend, time.Now()).Register(mux)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	authenticator := middleware.NewAuthenticator(tokens, store)
	rt := handlers.NewRouter(mux, cfg.APIBasePath, authenticator.Require)

	handlers.NewAuthHandler(store, tokens).Register(rt)
	handlers.NewProfileHandler(store).Register(rt)
	handlers.NewUserHandler(store).Register(rt)
	handlers.NewCategoryHandler(store).Register(rt)
	handlers.NewTransactionHandler(store, alerts.NewBudgetWatcher(store, cfg.Location), cfg.Location).Register(rt)
	handlers.NewBudgetHandler(store).Register(rt)
	handlers.NewNotificationHandler(store).Register(rt)

	return middleware.Logging(logger, middleware.CORS(cfg.CORSOrigins, mux))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
