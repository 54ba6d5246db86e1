package interfaces

import (
	"context"

	"github.com/docugenhq/docugen/internal/models"
)

// AuthService is the opaque identity provider
type AuthService interface {
	// Login validates credentials and creates a durable session.
	// Invalid credentials return ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*models.Session, error)

	// Logout removes the session; unknown IDs are a no-op
	Logout(ctx context.Context, sessionID string) error

	// CurrentUser resolves the session to its user, or nil if not signed in
	CurrentUser(ctx context.Context, sessionID string) (*models.User, error)
}
