package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/customer"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/google/uuid"
)

type accountRepository struct{ uow *UoW }

func (r *accountRepository) Get(ctx context.Context, id uint64) (*account.Account, error) {
	var out *account.Account
	err := r.uow.run(ctx, func(tx *txState) error {
		a, ok := tx.account(id)
		if !ok {
			return domain.ErrAccountNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

// GetForUpdate is Get: the unit of work already holds the store-wide lock.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uint64) (*account.Account, error) {
	return r.Get(ctx, id)
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	return r.uow.run(ctx, func(tx *txState) error {
		if _, ok := tx.customer(a.CustomerID); !ok {
			return domain.ErrCustomerNotFound
		}
		if a.Balance.IsNegative() {
			return fmt.Errorf("%w: opening balance %s", domain.ErrInvalidAmount, a.Balance)
		}
		tx.lastAccountID++
		a.ID = tx.lastAccountID
		if a.CreatedAt.IsZero() {
			a.CreatedAt = tx.s.now()
		}
		a.UpdatedAt = a.CreatedAt
		tx.accounts[a.ID] = *a
		return nil
	})
}

func (r *accountRepository) AdjustBalance(ctx context.Context, id uint64, delta money.Money) (*account.Account, error) {
	var out *account.Account
	err := r.uow.run(ctx, func(tx *txState) error {
		a, ok := tx.account(id)
		if !ok {
			return domain.ErrAccountNotFound
		}
		next, err := a.Balance.Add(delta)
		if err != nil {
			return err
		}
		if next.IsNegative() {
			return fmt.Errorf("%w: account %d cannot be debited %s",
				domain.ErrInsufficientFunds, id, delta.Negate())
		}
		a.Balance = next
		a.UpdatedAt = tx.s.now()
		tx.accounts[id] = a
		out = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type transactionRepository struct{ uow *UoW }

func (r *transactionRepository) Append(ctx context.Context, rec *account.Record) error {
	return r.uow.run(ctx, func(tx *txState) error {
		if _, ok := tx.account(rec.AccountID); !ok {
			return domain.ErrAccountNotFound
		}
		if !rec.Amount.IsPositive() {
			return fmt.Errorf("%w: ledger amount %s", domain.ErrInvalidAmount, rec.Amount)
		}
		if rec.Reference == uuid.Nil {
			rec.Reference = uuid.New()
		}
		tx.lastRecordID++
		rec.ID = tx.lastRecordID
		rec.CreatedAt = tx.s.now()
		tx.records = append(tx.records, *rec)
		return nil
	})
}

func (r *transactionRepository) Get(ctx context.Context, id uint64) (*account.Record, error) {
	var out *account.Record
	err := r.uow.run(ctx, func(tx *txState) error {
		rec, ok := tx.record(id)
		if !ok {
			return domain.ErrRecordNotFound
		}
		out = &rec
		return nil
	})
	return out, err
}

// Recent returns the newest records first. Ids are assigned in commit order, so they
// break ties between records created at the same instant.
func (r *transactionRepository) Recent(ctx context.Context, accountID uint64, limit int) ([]*account.Record, error) {
	out := []*account.Record{}
	if limit <= 0 {
		return out, nil
	}
	err := r.uow.run(ctx, func(tx *txState) error {
		for i := len(tx.records) - 1; i >= 0 && len(out) < limit; i-- {
			if tx.records[i].AccountID == accountID {
				rec := tx.records[i]
				out = append(out, &rec)
			}
		}
		ids := tx.s.byAccount[accountID]
		for i := len(ids) - 1; i >= 0 && len(out) < limit; i-- {
			rec := tx.s.records[ids[i]]
			out = append(out, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type customerRepository struct{ uow *UoW }

func (r *customerRepository) Get(ctx context.Context, id uint64) (*customer.Customer, error) {
	var out *customer.Customer
	err := r.uow.run(ctx, func(tx *txState) error {
		c, ok := tx.customer(id)
		if !ok {
			return domain.ErrCustomerNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return r.uow.run(ctx, func(tx *txState) error {
		tx.lastCustomerID++
		c.ID = tx.lastCustomerID
		if c.CreatedAt.IsZero() {
			c.CreatedAt = tx.s.now()
		}
		tx.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepository) List(ctx context.Context, limit int) ([]*customer.Customer, error) {
	out := []*customer.Customer{}
	if limit <= 0 {
		return out, nil
	}
	err := r.uow.run(ctx, func(tx *txState) error {
		for id := tx.lastCustomerID; id > 0 && len(out) < limit; id-- {
			if c, ok := tx.customer(id); ok {
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}
