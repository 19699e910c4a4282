// Package ledger appends and reads the immutable transaction history.
package ledger

import (
	"context"
	"log/slog"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/google/uuid"
)

// Service is the only writer of transaction records. Records are never updated or deleted.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Append writes one record through tx, so the record commits or rolls back with the
// caller's other mutations. A nil tx runs the append as its own unit of work.
func (s *Service) Append(
	ctx context.Context,
	tx repository.UnitOfWork,
	accountID uint64,
	t account.TxType,
	amount money.Money,
	remarks string,
	ref uuid.UUID,
) (*account.Record, error) {
	rec, err := account.NewRecord(accountID, t, amount, remarks, ref)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		tx = s.uow
	}
	err = tx.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		return repo.Append(ctx, rec)
	})
	if err != nil {
		s.logger.Error("Ledger append failed",
			"account_id", accountID, "type", t, "amount", amount.String(), "error", err)
		return nil, domain.AsPersistence(err)
	}
	s.logger.Debug("Ledger record appended",
		"record_id", rec.ID, "account_id", accountID, "type", t, "reference", rec.Reference)
	return rec, nil
}

// Recent returns at most limit records for the account, newest first.
func (s *Service) Recent(ctx context.Context, accountID uint64, limit int) ([]*account.Record, error) {
	return s.RecentIn(ctx, s.uow, accountID, limit)
}

// RecentIn is Recent evaluated inside tx.
func (s *Service) RecentIn(ctx context.Context, tx repository.UnitOfWork, accountID uint64, limit int) ([]*account.Record, error) {
	repo, err := tx.TransactionRepository()
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	recs, err := repo.Recent(ctx, accountID, limit)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	return recs, nil
}

// Get returns a previously appended record.
func (s *Service) Get(ctx context.Context, id uint64) (*account.Record, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	rec, err := repo.Get(ctx, id)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	return rec, nil
}
