package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/croftworks/credstore/domain"
	"github.com/croftworks/credstore/pkg/cryptox"
	"github.com/croftworks/credstore/pkg/idx"
	"github.com/croftworks/credstore/pkg/slogx"
	"github.com/croftworks/credstore/store"
)

var (
	ErrUnknownSurface     = errors.New("unknown surface")
	ErrCredentialMismatch = errors.New("credentials do not match a registered user")
)

// AuthService resolves identifiers, verifies passwords and maintains the
// per-surface remember-me ledger.
type AuthService struct {
	Store store.Store
}

// Login verifies an identifier/password pair. A failed result never says
// whether the identifier or the password was wrong, and empty input simply
// fails. Only storage faults surface as errors.
func (s *AuthService) Login(
	ctx context.Context,
	identifier, password string,
) (domain.LoginResult, error) {
	ctx = slogx.WithAttemptID(ctx, idx.New().String())
	log := slogx.FromContext(ctx)

	// Empty fields are a front-end pre-check; tolerate them here and fail
	// the attempt without touching storage.
	if identifier == "" || password == "" {
		return domain.LoginResult{}, nil
	}

	user, err := s.Store.Users().GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("login attempt failed")
			return domain.LoginResult{}, nil
		}
		log.Error("failed to resolve login identifier", slog.Any("error", err))
		return domain.LoginResult{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			// Stored hash did not parse. The write path only stores encoded
			// hashes, so this indicates tampered or corrupted rows; the
			// attempt still just fails.
			log.Warn("stored password hash could not be verified",
				slog.Int64("user_id", user.ID),
				slog.Any("error", err),
			)
		}
		log.Debug("login attempt failed")
		return domain.LoginResult{}, nil
	}

	log.Debug("login succeeded", slog.Int64("user_id", user.ID))
	return domain.LoginResult{Success: true, UserID: user.ID}, nil
}

// Authenticate is the boolean form of Login.
func (s *AuthService) Authenticate(
	ctx context.Context,
	identifier, password string,
) (bool, error) {
	result, err := s.Login(ctx, identifier, password)
	if err != nil {
		return false, err
	}
	return result.Success, nil
}

// PasswordHashIfValid returns the stored hash when the password verifies.
// Front ends use it to persist a remember-me entry without re-hashing.
func (s *AuthService) PasswordHashIfValid(
	ctx context.Context,
	identifier, password string,
) (string, bool, error) {
	if identifier == "" || password == "" {
		return "", false, nil
	}

	user, err := s.Store.Users().GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", false, nil
	}

	return user.PasswordHash, true, nil
}

// Remember records an identifier on a surface's ledger after a successful
// login. The (identifier, passwordHash) pair must correspond to a stored
// user with exactly that hash; remembering an already-remembered user is a
// no-op.
func (s *AuthService) Remember(
	ctx context.Context,
	surface domain.Surface,
	identifier, passwordHash string,
) error {
	ctx = slogx.WithAttemptID(ctx, idx.New().String())
	log := slogx.FromContext(ctx)

	if !surface.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSurface, surface)
	}

	user, err := s.Store.Users().GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("remember requested for unknown identifier",
				slog.String("surface", surface.String()),
			)
			return ErrCredentialMismatch
		}
		log.Error("failed to resolve remember identifier", slog.Any("error", err))
		return err
	}

	if !cryptox.EqualHashes(passwordHash, user.PasswordHash) {
		log.Warn("remember requested with mismatched credentials",
			slog.String("surface", surface.String()),
			slog.Int64("user_id", user.ID),
		)
		return ErrCredentialMismatch
	}

	if err := s.Store.Remembered().RememberUser(ctx, surface, user.ID); err != nil {
		log.Error("failed to remember user",
			slog.String("surface", surface.String()),
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
		return err
	}

	log.Debug("user remembered",
		slog.String("surface", surface.String()),
		slog.Int64("user_id", user.ID),
	)
	return nil
}

// IsRemembered reports whether a user already has a ledger entry on a surface.
func (s *AuthService) IsRemembered(
	ctx context.Context,
	surface domain.Surface,
	userID int64,
) (bool, error) {
	if !surface.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownSurface, surface)
	}
	return s.Store.Remembered().IsRemembered(ctx, surface, userID)
}

// ListRemembered returns one surface's ledger joined with user data, in
// insertion order, for credential pre-fill.
func (s *AuthService) ListRemembered(
	ctx context.Context,
	surface domain.Surface,
) ([]domain.RememberedUser, error) {
	if !surface.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, surface)
	}
	return s.Store.Remembered().ListRemembered(ctx, surface)
}
