package sqlite

import (
	"context"

	"github.com/croftworks/credstore/domain"
)

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) CreateUser(
	ctx context.Context,
	username, email, passwordHash string,
) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
	`, username, email, passwordHash)
	if err != nil {
		return 0, mapUnique(err)
	}
	return res.LastInsertId()
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return r.getUser(ctx, `
		SELECT id, username, email, password_hash FROM users WHERE id = ?
	`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUser(ctx, `
		SELECT id, username, email, password_hash FROM users WHERE username = ?
	`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `
		SELECT id, username, email, password_hash FROM users WHERE email = ?
	`, email)
}

func (r *usersRepo) GetUserByIdentifier(
	ctx context.Context,
	identifier string,
) (domain.User, error) {
	return r.getUser(ctx, `
		SELECT id, username, email, password_hash FROM users
		WHERE username = ? OR email = ?
	`, identifier, identifier)
}

func (r *usersRepo) getUser(ctx context.Context, query string, args ...any) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}
