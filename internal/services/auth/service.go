package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/common"
	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/models"
)

// ErrInvalidCredentials is returned when the email/password pair is rejected
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service implements the AuthService interface against the demo credential
// store: a single configured email/password pair. Sessions are durable so a
// restart does not sign users out.
type Service struct {
	sessions interfaces.SessionStorage
	config   common.AuthConfig
	logger   arbor.ILogger
}

// NewService creates a new auth service
func NewService(sessions interfaces.SessionStorage, config common.AuthConfig, logger arbor.ILogger) *Service {
	return &Service{
		sessions: sessions,
		config:   config,
		logger:   logger,
	}
}

// Login validates credentials and creates a durable session
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := s.simulateDelay(ctx); err != nil {
		return nil, err
	}

	if !strings.EqualFold(email, s.config.Email) || password != s.config.Password {
		s.logger.Warn().Str("email", email).Msg("Login rejected")
		return nil, ErrInvalidCredentials
	}

	session := &models.Session{
		ID:        common.NewSessionID(),
		UserID:    "user-123",
		Email:     s.config.Email,
		CreatedAt: time.Now(),
	}

	if err := s.sessions.StoreSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", session.Email).Str("session_id", session.ID).Msg("User logged in")
	return session, nil
}

// Logout removes the session; unknown IDs are a no-op
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", sessionID).Msg("User logged out")
	return nil
}

// CurrentUser resolves the session to its user, or nil if not signed in
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, nil
	}
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil
	}
	return &models.User{ID: session.UserID, Email: session.Email}, nil
}

func (s *Service) simulateDelay(ctx context.Context) error {
	if s.config.LoginDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.config.LoginDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
