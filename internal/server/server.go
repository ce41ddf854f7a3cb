package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/pos-audit-be/internal/auth"
	"github.com/hongminglow/pos-audit-be/internal/config"
	"github.com/hongminglow/pos-audit-be/internal/http/handlers"
	"github.com/hongminglow/pos-audit-be/internal/logger"
	"github.com/hongminglow/pos-audit-be/internal/middleware"
	"github.com/hongminglow/pos-audit-be/internal/report"
	"github.com/hongminglow/pos-audit-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, log *zap.Logger) *Server {
	return &Server{inner: &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, store, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}}
}

// Handler builds the routed and middleware-wrapped handler tree.
func Handler(cfg config.Config, store storage.Store, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	health := handlers.NewHealthHandler(time.Now(), store, logger.Named(log, "http.health"))
	health.Register(mux)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authSvc := auth.NewService(store, tokenManager, cfg.BcryptCost, logger.Named(log, "svc.auth"))
	handlers.NewAuthHandler(authSvc, logger.Named(log, "http.auth")).Register(mux)

	reportSvc := report.NewService(store, logger.Named(log, "svc.report"))
	handlers.NewReportHandler(reportSvc).Register(mux)

	httpLog := logger.Named(log, "http")
	return middleware.CORS(cfg.CORSOrigins, middleware.Logging(httpLog, middleware.Recover(httpLog, mux)))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
