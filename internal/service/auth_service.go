package service

import (
	"context"
	"crypto/subtle"

	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/repository"
	"github.com/blog-store-api/internal/validation"
	"github.com/rs/zerolog"
)

// authService is the concrete implementation of AuthService
type authService struct {
	session   repository.SessionRepository
	validator *validation.Validator
	log       zerolog.Logger
}

// newAuthService creates a new AuthService
func newAuthService(session repository.SessionRepository, validator *validation.Validator, log zerolog.Logger) *authService {
	return &authService{
		session:   session,
		validator: validator,
		log:       log.With().Str("service", "auth").Logger(),
	}
}

func (s *authService) Register(ctx context.Context, cred models.Credentials) (*models.Account, error) {
	if err := s.validator.ValidateCredentials(&cred).Err(); err != nil {
		return nil, err
	}
	return s.session.Register(ctx, cred)
}

func (s *authService) Login(ctx context.Context, cred models.Credentials) (*models.Account, string, error) {
	cred.Email = ""
	if err := s.validator.ValidateCredentials(&cred).Err(); err != nil {
		return nil, "", err
	}
	user, token, err := s.session.Login(ctx, cred.Username, cred.Password)
	if err != nil {
		s.log.Warn().Str("username", cred.Username).Msg("Login failed")
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Logout(ctx context.Context) {
	s.session.Logout(ctx)
}

// ValidateToken reports whether a session is active
func (s *authService) ValidateToken() bool {
	return s.session.ValidateToken()
}

// Authorize reports whether token is the active session token
func (s *authService) Authorize(token string) bool {
	current := s.session.Token()
	if current == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(current), []byte(token)) == 1
}

func (s *authService) CurrentUser() (*models.Account, bool) {
	return s.session.CurrentUser()
}

func (s *authService) ResetPassword(ctx context.Context, req models.PasswordReset) error {
	if err := s.validator.ValidatePasswordReset(&req).Err(); err != nil {
		return err
	}
	if err := s.session.ResetPassword(ctx, req.Username, req.NewPassword); err != nil {
		return err
	}
	s.log.Info().Str("username", req.Username).Msg("Password reset")
	return nil
}
