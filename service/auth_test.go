package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/croftworks/credstore/domain"
	"github.com/croftworks/credstore/pkg/slogx"
	"github.com/stretchr/testify/require"
)

// registerAlice seeds one user and returns the services bound to the store.
func registerAlice(t *testing.T) (context.Context, *RegistrationService, *AuthService) {
	t.Helper()

	ctx := context.Background()
	db := newTestStore(t)
	reg := &RegistrationService{Store: db}
	auth := &AuthService{Store: db}

	_, err := reg.Register(ctx, "alice", "alice@example.com", "goodpass1")
	require.NoError(t, err)

	return ctx, reg, auth
}

func TestLogin(t *testing.T) {
	ctx, _, auth := registerAlice(t)

	t.Run("by username", func(t *testing.T) {
		result, err := auth.Login(ctx, "alice", "goodpass1")
		require.NoError(t, err)
		require.True(t, result.Success)
		require.Positive(t, result.UserID)
	})

	t.Run("by email", func(t *testing.T) {
		result, err := auth.Login(ctx, "alice@example.com", "goodpass1")
		require.NoError(t, err)
		require.True(t, result.Success)
	})

	t.Run("wrong password", func(t *testing.T) {
		result, err := auth.Login(ctx, "alice", "wrongpw")
		require.NoError(t, err)
		require.False(t, result.Success)
		require.Zero(t, result.UserID)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		result, err := auth.Login(ctx, "mallory", "goodpass1")
		require.NoError(t, err)
		require.False(t, result.Success)
	})

	t.Run("empty input tolerated", func(t *testing.T) {
		result, err := auth.Login(ctx, "", "")
		require.NoError(t, err)
		require.False(t, result.Success)

		result, err = auth.Login(ctx, "alice", "")
		require.NoError(t, err)
		require.False(t, result.Success)
	})
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx, _, auth := registerAlice(t)

	wrongPassword, err := auth.Login(ctx, "alice", "wrongpw")
	require.NoError(t, err)

	unknownUser, err := auth.Login(ctx, "mallory", "wrongpw")
	require.NoError(t, err)

	// Neither the result nor the error may reveal which field was wrong.
	require.Equal(t, wrongPassword, unknownUser)
}

func TestAuthenticate(t *testing.T) {
	ctx, _, auth := registerAlice(t)

	ok, err := auth.Authenticate(ctx, "alice", "goodpass1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = auth.Authenticate(ctx, "alice", "wrongpw")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = auth.Authenticate(ctx, "nobody", "goodpass1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPasswordHashIfValid(t *testing.T) {
	ctx, _, auth := registerAlice(t)

	hash, ok, err := auth.PasswordHashIfValid(ctx, "alice", "goodpass1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "goodpass1", hash)

	stored, err := auth.Store.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, stored.PasswordHash, hash)

	t.Run("wrong password yields nothing", func(t *testing.T) {
		hash, ok, err := auth.PasswordHashIfValid(ctx, "alice", "wrongpw")
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, hash)
	})

	t.Run("unknown identifier yields nothing", func(t *testing.T) {
		_, ok, err := auth.PasswordHashIfValid(ctx, "nobody", "goodpass1")
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestRemember(t *testing.T) {
	ctx, _, auth := registerAlice(t)

	hash, ok, err := auth.PasswordHashIfValid(ctx, "alice", "goodpass1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, auth.Remember(ctx, domain.SurfaceTk, "alice", hash))

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, auth.Remember(ctx, domain.SurfaceTk, "alice", hash))

		entries, err := auth.ListRemembered(ctx, domain.SurfaceTk)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "alice", entries[0].Username)
		require.Equal(t, hash, entries[0].PasswordHash)
	})

	t.Run("surfaces stay isolated", func(t *testing.T) {
		entries, err := auth.ListRemembered(ctx, domain.SurfaceQt)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("is remembered", func(t *testing.T) {
		stored, err := auth.Store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)

		ok, err := auth.IsRemembered(ctx, domain.SurfaceTk, stored.ID)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = auth.IsRemembered(ctx, domain.SurfaceKv, stored.ID)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestRememberRejectsBadInput(t *testing.T) {
	ctx, _, auth := registerAlice(t)

	hash, ok, err := auth.PasswordHashIfValid(ctx, "alice", "goodpass1")
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("unknown surface", func(t *testing.T) {
		err := auth.Remember(ctx, domain.Surface("web"), "alice", hash)
		require.ErrorIs(t, err, ErrUnknownSurface)

		_, err = auth.ListRemembered(ctx, domain.Surface("web"))
		require.ErrorIs(t, err, ErrUnknownSurface)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		err := auth.Remember(ctx, domain.SurfaceTk, "mallory", hash)
		require.ErrorIs(t, err, ErrCredentialMismatch)
	})

	t.Run("mismatched hash", func(t *testing.T) {
		err := auth.Remember(ctx, domain.SurfaceTk, "alice", "$argon2id$not-the-stored-hash")
		require.ErrorIs(t, err, ErrCredentialMismatch)
	})

	// None of the rejected calls may have written a ledger entry.
	entries, err := auth.ListRemembered(ctx, domain.SurfaceTk)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRememberLogsScopedAttemptID(t *testing.T) {
	ctx, _, auth := registerAlice(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx = slogx.WithContext(ctx, logger)

	// A rejected remember logs through the attempt-scoped logger, carrying
	// the same correlation id register and login attempts get.
	err := auth.Remember(ctx, domain.SurfaceTk, "mallory", "$argon2id$not-a-hash")
	require.ErrorIs(t, err, ErrCredentialMismatch)
	require.Contains(t, buf.String(), "attempt_id=")
}

func TestRegisterThenLoginScenario(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	reg := &RegistrationService{Store: db}
	auth := &AuthService{Store: db}

	_, err := reg.Register(ctx, "alice", "alice@example.com", "goodpass1")
	require.NoError(t, err)

	_, err = reg.Register(ctx, "alice", "bob@example.com", "anotherpw1")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, domain.FieldUsername, verr.Field)
	require.Equal(t, domain.KindDuplicate, verr.Kind)

	result, err := auth.Login(ctx, "alice", "goodpass1")
	require.NoError(t, err)
	require.True(t, result.Success)

	result, err = auth.Login(ctx, "alice", "wrongpw")
	require.NoError(t, err)
	require.False(t, result.Success)
}
