package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/pos-audit-be/internal/http/respond"
	"github.com/hongminglow/pos-audit-be/internal/storage"
)

const pingTimeout = 3 * time.Second

// HealthHandler reports whether the database is reachable, plus process uptime.
type HealthHandler struct {
	startedAt time.Time
	db        storage.Pinger
	logger    *zap.Logger
}

// NewHealthHandler creates the connection-check handler.
func NewHealthHandler(startedAt time.Time, db storage.Pinger, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{startedAt: startedAt, db: db, logger: logger}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/check-connection", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("database ping failed", zap.Error(err))
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Database connection failed"})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to Database",
		"uptime":  time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
