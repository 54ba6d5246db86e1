package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/common"
	badgerstorage "github.com/docugenhq/docugen/internal/storage/badger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := arbor.NewLogger()
	manager, err := badgerstorage.NewManager(logger, &common.BadgerConfig{Path: t.TempDir() + "/db"})
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	return NewService(manager.SessionStorage(), common.AuthConfig{
		Email:    "user@example.com",
		Password: "password",
	}, logger)
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "user@example.com", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "user@example.com", session.Email)

	user, err := svc.CurrentUser(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestLoginCaseInsensitiveEmail(t *testing.T) {
	svc := newTestService(t)

	session, err := svc.Login(context.Background(), "User@Example.COM", "password")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", session.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "other@example.com", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutEndsSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "user@example.com", "password")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.ID))

	user, err := svc.CurrentUser(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, user)

	// Logging out twice is a no-op
	assert.NoError(t, svc.Logout(ctx, session.ID))
}

func TestCurrentUserEmptySession(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CurrentUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, user)
}
