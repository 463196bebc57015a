package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"familyfinance/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending snapshot schema migration to the
// database at dbPath and logs the resulting version.
func RunMigrations(dbPath string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Discard()
	}

	// migrate closes the handle it is given, so it gets its own.
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer conn.Close()

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(conn, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Debug("Snapshot schema up to date", log.FieldOperation, log.OpMigrate)
	case err != nil:
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty", version)
	}
	logger.Info("Snapshot schema ready", log.FieldOperation, log.OpMigrate, "version", version)
	return nil
}
