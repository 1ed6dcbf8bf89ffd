// Package credstore is an embeddable credential management core:
// registration validation, password hashing, uniqueness enforcement, login
// verification and a per-surface remember-me ledger, persisted in sqlite.
// Front ends wire their events to the services on Core and render the typed
// results; no rendering or transport concerns live here.
package credstore

import (
	"fmt"
	"log/slog"

	"github.com/croftworks/credstore/pkg/cryptox"
	"github.com/croftworks/credstore/pkg/slogx"
	"github.com/croftworks/credstore/service"
	"github.com/croftworks/credstore/store"
	"github.com/croftworks/credstore/store/drivers/sqlite"
)

// BuildVersion is stamped at build time via ldflags.
var BuildVersion = "v0.1.0"

// Core bundles the opened store with the services a front end talks to.
// Construct it with Open; the caller owns it and must Close it.
type Core struct {
	cfg    Config
	logger *slog.Logger
	db     store.Store

	Registration *service.RegistrationService
	Auth         *service.AuthService
}

// Open configures logging and hashing, opens the sqlite store, applies
// migrations and wires the services.
func Open(cfg Config) (*Core, error) {
	core := &Core{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "credstore",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.PepperFile != "" {
		cryptox.SetPepperPath(cfg.PepperFile)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	core.db = db

	core.Registration = &service.RegistrationService{Store: db}
	core.Auth = &service.AuthService{Store: db}

	core.logger.Info("credential store opened", "database", cfg.DatabaseFile)
	return core, nil
}

// Store exposes the underlying store, mainly for tests and maintenance tools.
func (c *Core) Store() store.Store { return c.db }

// Logger returns the logger configured at Open.
func (c *Core) Logger() *slog.Logger { return c.logger }

// Close releases the underlying database handle.
func (c *Core) Close() error {
	if err := c.db.Close(); err != nil {
		c.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}
