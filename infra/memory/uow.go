package memory

import (
	"context"

	"github.com/amirasaad/bankledger/pkg/repository"
)

// UoW implements repository.UnitOfWork on top of a Store.
type UoW struct {
	store *Store
	tx    *txState
}

// NewUoW returns the root unit of work. Repositories taken from it outside Do run
// every call as its own implicit unit of work.
func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.store.transact(ctx, func(tx *txState) error {
		return fn(&UoW{store: u.store, tx: tx})
	})
}

func (u *UoW) run(ctx context.Context, fn func(tx *txState) error) error {
	if u.tx != nil {
		return fn(u.tx)
	}
	return u.store.transact(ctx, fn)
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepository{uow: u}, nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepository{uow: u}, nil
}

func (u *UoW) CustomerRepository() (repository.CustomerRepository, error) {
	return &customerRepository{uow: u}, nil
}
