package service

import (
	"context"

	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/repository"
	"github.com/JaydevKalariyaa/proxima-sales/internal/infrastructure/session"
	"go.uber.org/zap"
)

// AuthService manages the login session lifecycle.
type AuthService struct {
	authRepo repository.AuthRepository
	session  *session.Session
	logger   *zap.Logger
}

// NewAuthService creates an auth service bound to the given session.
func NewAuthService(authRepo repository.AuthRepository, sess *session.Session, logger *zap.Logger) *AuthService {
	return &AuthService{
		authRepo: authRepo,
		session:  sess,
		logger:   logger,
	}
}

// Login exchanges credentials for a bearer token and persists it.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	token, err := s.authRepo.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("login failed", zap.String("email", email), zap.Error(err))
		return err
	}
	if err := s.session.SetToken(token); err != nil {
		return err
	}
	s.logger.Info("logged in", zap.String("email", email))
	return nil
}

// Logout tears the session down. Safe to call when already logged out.
func (s *AuthService) Logout() error {
	return s.session.Teardown()
}

// Authenticated reports whether a session token is present.
func (s *AuthService) Authenticated() bool {
	return s.session.Authenticated()
}
