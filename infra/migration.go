package infra

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/amirasaad/bankledger/infra/repository"
	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"
)

// Migrate brings the schema up to date. Postgres runs the versioned SQL migrations,
// sqlite falls back to gorm's AutoMigrate.
func Migrate(db *gorm.DB, cnf *config.DB, logger *slog.Logger) error {
	switch cnf.Driver {
	case config.DriverPostgres:
		return RunMigrations(db, cnf.MigrationsPath, logger)
	case config.DriverSQLite:
		logger.Info("Auto-migrating sqlite schema")
		return repository.AutoMigrate(db)
	default:
		return fmt.Errorf("driver %q does not support migrations", cnf.Driver)
	}
}

// RunMigrations applies every pending migration found in dir.
func RunMigrations(db *gorm.DB, dir string, logger *slog.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	driver, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(abs), "postgres", driver)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("Schema is up to date")
		return nil
	case err != nil:
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	logger.Info("Migrations applied", "version", version)
	return nil
}
