package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/croftworks/credstore/domain"
	"github.com/croftworks/credstore/store"
	"github.com/croftworks/credstore/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	reg := &RegistrationService{Store: db}

	user, err := reg.Register(ctx, "alice", "alice@example.com", "goodpass1")
	require.NoError(t, err)
	require.Positive(t, user.ID)
	require.Equal(t, "alice", user.Username)

	stored, err := db.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.ID)

	// One-way: the stored value is an encoded digest, never the plaintext.
	require.NotEqual(t, "goodpass1", stored.PasswordHash)
	require.True(t, strings.HasPrefix(stored.PasswordHash, "$argon2id$"))
}

func TestRegisterValidationOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	reg := &RegistrationService{Store: db}

	// Seed a user so uniqueness rules have something to trip on.
	_, err := reg.Register(ctx, "alice", "alice@example.com", "goodpass1")
	require.NoError(t, err)

	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		wantField domain.Field
		wantKind  domain.Kind
	}{
		// Every field invalid: the username rule must win.
		{"username syntax first", "ab", "bad", "short", domain.FieldUsername, domain.KindTooShort},
		{"username charset before email", "bad name", "bad", "short", domain.FieldUsername, domain.KindInvalidChars},
		// Username taken beats broken email and password.
		{"username uniqueness second", "alice", "bad", "short", domain.FieldUsername, domain.KindDuplicate},
		// Valid username: email syntax is next.
		{"email syntax third", "bob", "bad", "short", domain.FieldEmail, domain.KindTooShort},
		{"email format third", "bob", "not-an-email", "short", domain.FieldEmail, domain.KindInvalidFormat},
		// Email taken beats the bad password.
		{"email uniqueness fourth", "bob", "alice@example.com", "short", domain.FieldEmail, domain.KindDuplicate},
		// Everything else fine: password length is checked last.
		{"password last", "bob", "bob@example.com", "short", domain.FieldPassword, domain.KindTooShort},
		{"password too long", "bob", "bob@example.com", strings.Repeat("p", 65), domain.FieldPassword, domain.KindTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Register(ctx, tt.username, tt.email, tt.password)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.wantField, verr.Field)
			require.Equal(t, tt.wantKind, verr.Kind)
		})
	}

	// None of the rejected attempts may have written a row.
	_, err = db.Users().GetUserByUsername(ctx, "bob")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegisterShortCircuitWritesNothing(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	reg := &RegistrationService{Store: db}

	_, err := reg.Register(ctx, "ab", "valid@example.com", "goodpass1")

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, domain.KindTooShort, verr.Kind)

	// The email was perfectly valid, but the failed username check must stop
	// everything before storage.
	_, err = db.Users().GetUserByEmail(ctx, "valid@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	reg := &RegistrationService{Store: db}

	_, err := reg.Register(ctx, "alice", "alice@example.com", "goodpass1")
	require.NoError(t, err)

	// Different email and password make no difference.
	_, err = reg.Register(ctx, "alice", "bob@example.com", "anotherpw1")
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, domain.FieldUsername, verr.Field)
	require.Equal(t, domain.KindDuplicate, verr.Kind)
	require.Contains(t, verr.Message, "alice")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	reg := &RegistrationService{Store: db}

	_, err := reg.Register(ctx, "alice", "alice@example.com", "goodpass1")
	require.NoError(t, err)

	_, err = reg.Register(ctx, "bob", "alice@example.com", "anotherpw1")
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, domain.FieldEmail, verr.Field)
	require.Equal(t, domain.KindDuplicate, verr.Kind)
}

func TestRegisterDetectsRowsWrittenOutOfBand(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	reg := &RegistrationService{Store: db}

	// A row written directly through the store, without the service's
	// pre-checks, must still surface as the same Duplicate error.
	_, err := db.Users().CreateUser(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)

	// errors.Is matches validation errors by field and kind.
	_, err = reg.Register(ctx, "bob", "alice@example.com", "goodpass1")
	require.True(t, errors.Is(err, &domain.ValidationError{
		Field: domain.FieldEmail,
		Kind:  domain.KindDuplicate,
	}))
}
