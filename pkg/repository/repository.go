package repository

import (
	"context"

	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/customer"
	"github.com/amirasaad/bankledger/pkg/domain/money"
)

// AccountRepository is the sole authority on account balances.
type AccountRepository interface {
	// Get returns the latest committed snapshot of the account.
	Get(ctx context.Context, id uint64) (*account.Account, error)
	// GetForUpdate reads the account and locks its row until the enclosing unit of
	// work ends.
	GetForUpdate(ctx context.Context, id uint64) (*account.Account, error)
	// Create persists a new account and assigns its ID.
	Create(ctx context.Context, a *account.Account) error
	// AdjustBalance applies balance += delta as one conditional step. A negative delta
	// that would leave the balance below zero fails with domain.ErrInsufficientFunds.
	AdjustBalance(ctx context.Context, id uint64, delta money.Money) (*account.Account, error)
}

// TransactionRepository is the append-only ledger store.
type TransactionRepository interface {
	// Append inserts rec and fills in its ID and CreatedAt.
	Append(ctx context.Context, rec *account.Record) error
	Get(ctx context.Context, id uint64) (*account.Record, error)
	// Recent returns at most limit records for the account, most recent first.
	Recent(ctx context.Context, accountID uint64, limit int) ([]*account.Record, error)
}

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	Get(ctx context.Context, id uint64) (*customer.Customer, error)
	Create(ctx context.Context, c *customer.Customer) error
	// List returns at most limit customers, newest first.
	List(ctx context.Context, limit int) ([]*customer.Customer, error)
}
