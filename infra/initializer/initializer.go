package initializer

import (
	"fmt"

	"github.com/amirasaad/bankledger/infra"
	"github.com/amirasaad/bankledger/infra/memory"
	infra_repository "github.com/amirasaad/bankledger/infra/repository"
	"github.com/amirasaad/bankledger/pkg/app"
	"github.com/amirasaad/bankledger/pkg/config"
)

// InitializeDependencies builds the logger and the storage backend selected by
// DATABASE_DRIVER. SQL backends are migrated before they are handed out.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := SetupLogger(cfg.Log)
	deps.Logger = logger

	if cfg.DB.Driver == config.DriverMemory {
		logger.Info("Using in-memory storage; data is lost on exit")
		deps.Uow = memory.NewUoW(memory.NewStore())
		return deps, nil
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "driver", cfg.DB.Driver, "error", err)
		return nil, fmt.Errorf("connect %s: %w", cfg.DB.Driver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		logger.Error("Database unreachable", "driver", cfg.DB.Driver, "error", err)
		return nil, fmt.Errorf("ping %s: %w", cfg.DB.Driver, err)
	}
	if err := infra.Migrate(db, cfg.DB, logger); err != nil {
		_ = sqlDB.Close()
		logger.Error("Failed to migrate database", "error", err)
		return nil, err
	}

	deps.Uow = infra_repository.NewUoW(db)
	deps.Close = sqlDB.Close
	return deps, nil
}
