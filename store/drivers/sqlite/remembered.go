package sqlite

import (
	"context"

	"github.com/croftworks/credstore/domain"
)

type rememberedRepo struct {
	db dbtx
}

func (r *rememberedRepo) RememberUser(
	ctx context.Context,
	surface domain.Surface,
	userID int64,
) error {
	// Idempotent by construction: the composite unique index on
	// (surface, user_id) turns a repeat insert into a no-op.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO remembered_users (surface, user_id)
		VALUES (?, ?)
		ON CONFLICT (surface, user_id) DO NOTHING
	`, surface.String(), userID)
	return err
}

func (r *rememberedRepo) IsRemembered(
	ctx context.Context,
	surface domain.Surface,
	userID int64,
) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM remembered_users WHERE surface = ? AND user_id = ?
		)
	`, surface.String(), userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *rememberedRepo) ListRemembered(
	ctx context.Context,
	surface domain.Surface,
) ([]domain.RememberedUser, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.email, u.password_hash
		FROM remembered_users AS ru
		JOIN users AS u ON u.id = ru.user_id
		WHERE ru.surface = ?
		ORDER BY ru.id
	`, surface.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RememberedUser
	for rows.Next() {
		var ru domain.RememberedUser
		if err := rows.Scan(&ru.UserID, &ru.Username, &ru.Email, &ru.PasswordHash); err != nil {
			return nil, err
		}
		out = append(out, ru)
	}
	return out, rows.Err()
}
