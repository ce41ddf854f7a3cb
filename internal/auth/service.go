package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/pos-audit-be/internal/apperr"
	"github.com/hongminglow/pos-audit-be/internal/models"
	"github.com/hongminglow/pos-audit-be/internal/storage"
)

// Client-facing messages. Unknown email and wrong password share msgInvalidCredentials.
const (
	msgRegisterFields     = "All fields are required."
	msgLoginFields        = "Email and password are required."
	msgUserExists         = "User already exists."
	msgInvalidCredentials = "Invalid email or password."
	msgDatabase           = "Database error."
	msgRegisterFailed     = "Registration failed."
	msgPasswordCompare    = "Password comparison error."
	msgServer             = "Server error."
)

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	Token string
	User  models.User
}

// Service implements registration and login over a UserStore.
type Service struct {
	store      storage.UserStore
	tokens     *TokenManager
	bcryptCost int
	now        func() time.Time
	logger     *zap.Logger
}

// NewService builds the auth service. A nil logger disables logging.
func NewService(store storage.UserStore, tokens *TokenManager, bcryptCost int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:      store,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
		logger:     logger,
	}
}

// Register creates a user after checking the email is unused.
// The lookup and the insert are separate round trips; a unique constraint on
// audituser.email is what closes the window between them.
func (s *Service) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	email := strings.TrimSpace(in.Email)
	role := strings.TrimSpace(in.Role)
	if email == "" || in.Password == "" || role == "" {
		return models.User{}, apperr.New(apperr.Validation, msgRegisterFields)
	}

	_, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Warn("register rejected: user exists", zap.String("email", email))
		return models.User{}, apperr.New(apperr.Conflict, msgUserExists)
	case !errors.Is(err, storage.ErrNotFound):
		s.logger.Error("register: user lookup failed", zap.Error(err))
		return models.User{}, apperr.Wrap(apperr.Dependency, msgDatabase, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("register: hash password", zap.Error(err))
		return models.User{}, apperr.Wrap(apperr.Internal, msgServer, err)
	}

	created, err := s.store.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedDate:  s.now(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			s.logger.Warn("register rejected: concurrent insert", zap.String("email", email))
			return models.User{}, apperr.New(apperr.Conflict, msgUserExists)
		}
		s.logger.Error("register: insert user", zap.Error(err))
		return models.User{}, apperr.Wrap(apperr.Dependency, msgRegisterFailed, err)
	}

	s.logger.Info("user registered", zap.Int64("id", created.ID), zap.String("email", email))
	created.PasswordHash = ""
	return created, nil
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return Session{}, apperr.New(apperr.Validation, msgLoginFields)
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("login failed: unknown email", zap.String("email", email))
			return Session{}, apperr.New(apperr.Unauthorized, msgInvalidCredentials)
		}
		s.logger.Error("login: user lookup failed", zap.Error(err))
		return Session{}, apperr.Wrap(apperr.Dependency, msgDatabase, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("login failed: password mismatch", zap.String("email", email))
			return Session{}, apperr.New(apperr.Unauthorized, msgInvalidCredentials)
		}
		s.logger.Error("login: compare password", zap.Int64("id", user.ID), zap.Error(err))
		return Session{}, apperr.Wrap(apperr.Internal, msgPasswordCompare, err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error("login: sign token", zap.Error(err))
		return Session{}, apperr.Wrap(apperr.Internal, msgServer, err)
	}

	user.PasswordHash = ""
	return Session{Token: token, User: user}, nil
}
