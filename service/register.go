package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/croftworks/credstore/domain"
	"github.com/croftworks/credstore/pkg/cryptox"
	"github.com/croftworks/credstore/pkg/idx"
	"github.com/croftworks/credstore/pkg/slogx"
	"github.com/croftworks/credstore/store"
)

// RegistrationService validates registration input and persists new users.
type RegistrationService struct {
	Store store.Store
}

// Register applies the registration rules in their fixed order, hashes the
// password and creates the user. The order is a contract with front ends:
// username syntax, username uniqueness, email syntax, email uniqueness,
// password length. The first failure wins and nothing is written.
//
// The uniqueness pre-checks keep error ordering deterministic; the schema
// UNIQUE constraints remain the final authority, so a concurrent registration
// that slips past a pre-check still surfaces as the same Duplicate error.
func (s *RegistrationService) Register(
	ctx context.Context,
	username, email, password string,
) (domain.User, error) {
	ctx = slogx.WithAttemptID(ctx, idx.New().String())
	log := slogx.FromContext(ctx)

	// 1. Username syntax
	if verr := checkUsername(username); verr != nil {
		log.Warn("registration rejected",
			slog.String("field", string(verr.Field)),
			slog.String("kind", string(verr.Kind)),
		)
		return domain.User{}, verr
	}

	// 2. Username uniqueness
	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err == nil {
		log.Warn("registration attempted with already-taken username",
			slog.String("username", username),
		)
		return domain.User{}, duplicateUsername(username)
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username availability", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Email syntax
	if verr := checkEmail(email); verr != nil {
		log.Warn("registration rejected",
			slog.String("field", string(verr.Field)),
			slog.String("kind", string(verr.Kind)),
		)
		return domain.User{}, verr
	}

	// 4. Email uniqueness
	_, err = s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		log.Warn("registration attempted with already-taken email")
		return domain.User{}, duplicateEmail(email)
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.User{}, err
	}

	// 5. Password length
	if verr := checkPassword(password); verr != nil {
		log.Warn("registration rejected",
			slog.String("field", string(verr.Field)),
			slog.String("kind", string(verr.Kind)),
		)
		return domain.User{}, verr
	}

	// 6. Hash the password. A hashing failure aborts the registration; the
	// plaintext is never stored as a fallback.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 7. Create the user. A constraint violation here means we lost a race
	// between the pre-check and the insert; report it as the same Duplicate
	// error the pre-check would have produced.
	id, err := s.Store.Users().CreateUser(ctx, username, email, passwordHash)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			log.Warn("username taken between check and insert",
				slog.String("username", username),
			)
			return domain.User{}, duplicateUsername(username)
		case errors.Is(err, store.ErrEmailTaken):
			log.Warn("email taken between check and insert")
			return domain.User{}, duplicateEmail(email)
		}
		log.Error("failed to create user",
			slog.String("username", username),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.Int64("user_id", id),
		slog.String("username", username),
	)

	return domain.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}, nil
}
