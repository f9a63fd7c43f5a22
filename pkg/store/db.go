// Package store persists parsed chat exports in SQLite.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// dsn adds the connection pragmas the schema relies on.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// connect opens the database and applies migrations.
func connect(path string, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("connecting to database %s: %w", path, err)
	}

	// SQLite doesn't support concurrent writes, so max open conns = 1
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := applyMigrations(db.DB, logger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("closing database after migration failure", "error", closeErr)
		}
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return db, nil
}

// applyMigrations runs the embedded schema migrations.
func applyMigrations(db *sql.DB, logger *slog.Logger) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating embed source driver: %w", err)
	}

	dbDriver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("no database migrations to apply")
			return nil
		}
		return err
	}

	logger.Debug("database migrations applied")
	return nil
}
