package app

import (
	"log/slog"

	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/amirasaad/bankledger/pkg/service/banking"
)

// Deps contains the process-wide handles the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
	// Close releases the storage backend. Nil for backends that hold no resources.
	Close func() error
}

type App struct {
	Deps           *Deps
	Config         *config.App
	BankingService *banking.Service
}

func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:           deps,
		Config:         cfg,
		BankingService: banking.New(deps.Uow, deps.Logger, cfg.Bank),
	}
}

// Shutdown releases the storage backend.
func (a *App) Shutdown() error {
	if a.Deps.Close == nil {
		return nil
	}
	return a.Deps.Close()
}
