package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/upk-it/helpdesk/internal/auth"
	"github.com/upk-it/helpdesk/internal/domain"
	"github.com/upk-it/helpdesk/internal/ratelimit"
	"github.com/upk-it/helpdesk/internal/repository"
	apperrors "github.com/upk-it/helpdesk/pkg/util"
)

// AuthService authenticates credentials and issues session tokens carrying
// id, role and area.
type AuthService struct {
	users   repository.UserRepository
	tokens  *auth.TokenManager
	limiter ratelimit.Limiter
	logger  *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, limiter ratelimit.Limiter, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter, logger: logger}
}

// Login verifies the credentials and returns the account plus a signed
// token. Attempts are rate-limited per email and client address; a limiter
// outage fails open.
func (s *AuthService) Login(ctx context.Context, email, password, clientIP string) (*domain.User, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Correo y contraseña son obligatorios", nil)
	}

	allowed, err := s.limiter.Allow(ctx, "login:"+email+":"+clientIP)
	if err != nil {
		s.logger.Debug("login rate limiter unavailable", zap.Error(err))
		allowed = true
	}
	if !allowed {
		return nil, "", time.Time{}, apperrors.NewTooManyRequests("Demasiados intentos, espera un momento")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Credenciales inválidas")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Credenciales inválidas")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, expiresAt, nil
}
