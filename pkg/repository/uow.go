package repository

import (
	"context"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Repositories obtained from the UnitOfWork handed to fn share its transaction, so every
// mutation made through them commits or rolls back together. Repositories obtained from
// the root UnitOfWork (outside Do) run each call on its own.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary.
	// If fn returns an error, or ctx ends before commit, the transaction is rolled back.
	// Calling Do on a transactional UnitOfWork joins the existing transaction.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	CustomerRepository() (CustomerRepository, error)
}
