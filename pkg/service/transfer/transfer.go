// Package transfer moves money between two accounts as one unit of work.
package transfer

import (
	"context"
	"log/slog"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/amirasaad/bankledger/pkg/service/ledger"
	"github.com/google/uuid"
)

// Result describes a committed transfer.
type Result struct {
	Reference uuid.UUID
	Amount    money.Money
	Out       *account.Record
	In        *account.Record
	From      *account.Account
	To        *account.Account
}

// Coordinator executes transfers. Both balance changes and both ledger records share
// one unit of work; any failure leaves no trace.
type Coordinator struct {
	uow    repository.UnitOfWork
	ledger *ledger.Service
	logger *slog.Logger
}

func NewCoordinator(uow repository.UnitOfWork, ledger *ledger.Service, logger *slog.Logger) *Coordinator {
	return &Coordinator{uow: uow, ledger: ledger, logger: logger}
}

// Transfer moves amount from one account to another.
func (c *Coordinator) Transfer(ctx context.Context, fromID, toID uint64, amount money.Money) (*Result, error) {
	logger := c.logger.With("from", fromID, "to", toID, "amount", amount.String())
	logger.Info("Transfer started")

	if err := account.ValidateAmount(amount); err != nil {
		logger.Warn("Transfer rejected", "error", err)
		return nil, err
	}
	if fromID == toID {
		logger.Warn("Transfer rejected", "error", domain.ErrSameAccount)
		return nil, domain.ErrSameAccount
	}

	res := &Result{Reference: uuid.New(), Amount: amount}
	err := c.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}

		// Lock in ascending id order so transfers with swapped endpoints cannot deadlock.
		first, second := fromID, toID
		if second < first {
			first, second = second, first
		}
		locked := make(map[uint64]*account.Account, 2)
		for _, id := range []uint64{first, second} {
			a, err := repo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			locked[id] = a
		}

		source, dest := locked[fromID], locked[toID]
		if err := source.ValidateTransfer(dest, amount); err != nil {
			return err
		}

		if res.From, err = repo.AdjustBalance(ctx, fromID, amount.Negate()); err != nil {
			return err
		}
		if res.To, err = repo.AdjustBalance(ctx, toID, amount); err != nil {
			return err
		}

		res.Out, err = c.ledger.Append(ctx, uow, fromID, account.TxTransferOut, amount,
			account.TransferOutRemark(toID), res.Reference)
		if err != nil {
			return err
		}
		res.In, err = c.ledger.Append(ctx, uow, toID, account.TxTransferIn, amount,
			account.TransferInRemark(fromID), res.Reference)
		return err
	})
	if err != nil {
		err = domain.AsPersistence(err)
		logger.Error("Transfer failed", "error", err)
		return nil, err
	}

	logger.Info("Transfer successful", "reference", res.Reference)
	return res, nil
}
