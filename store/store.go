package store

import (
	"context"
	"errors"

	"github.com/croftworks/credstore/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrUsernameTaken = errors.New("store: username already exists")
	ErrEmailTaken    = errors.New("store: email already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and it is the exclusive owner of both tables: no other component
// writes user or remember-me rows directly.
type Store interface {
	Users() Users
	Remembered() Remembered

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database handle.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user and returns its assigned id. The schema
	// UNIQUE constraints are the final authority on uniqueness: a violation
	// surfaces as ErrUsernameTaken or ErrEmailTaken even when a pre-check
	// raced and missed it.
	CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is an exact, case-sensitive lookup.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is an exact, case-sensitive lookup.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByIdentifier resolves a username or email in one query. Both
	// columns are globally unique, so at most one row can match.
	GetUserByIdentifier(ctx context.Context, identifier string) (domain.User, error)
}

type Remembered interface {
	// RememberUser inserts a (surface, user_id) ledger entry. Idempotent:
	// remembering an already-remembered user is a no-op, not an error.
	RememberUser(ctx context.Context, surface domain.Surface, userID int64) error

	// IsRemembered reports whether a ledger entry exists for the pair.
	IsRemembered(ctx context.Context, surface domain.Surface, userID int64) (bool, error)

	// ListRemembered returns every entry for one surface joined with its user
	// record, in insertion order.
	ListRemembered(ctx context.Context, surface domain.Surface) ([]domain.RememberedUser, error)
}
