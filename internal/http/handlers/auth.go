package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/pos-audit-be/internal/apperr"
	"github.com/hongminglow/pos-audit-be/internal/auth"
	"github.com/hongminglow/pos-audit-be/internal/http/respond"
	"github.com/hongminglow/pos-audit-be/internal/models"
	"github.com/hongminglow/pos-audit-be/internal/models/dto"
)

// AuthHandler owns the register/login endpoints.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/register", h.handleRegister)
	mux.HandleFunc("/api/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	h.logger.Debug("register request", zap.String("email", req.Email), zap.String("role", req.Role))

	user, err := h.svc.Register(r.Context(), auth.RegisterInput{Email: req.Email, Password: req.Password, Role: req.Role})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully.",
		User:    toView(user),
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	h.logger.Debug("login request", zap.String("email", req.Email))

	session, err := h.svc.Login(r.Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		writeAuthError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Token: session.Token, User: toView(session.User)})
}

func writeAuthError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	respond.Error(w, apperr.Status(kind), apperr.MessageOf(err, "Server error."))
}

func toView(u models.User) dto.UserView {
	return dto.UserView{ID: u.ID, Email: u.Email, Role: u.Role}
}
