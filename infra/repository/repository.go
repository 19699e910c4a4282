package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/customer"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id uint64) (*account.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).Take(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, domain.ErrAccountNotFound)
	}
	return mapAccountModelToDomain(&m), nil
}

// GetForUpdate locks the row with SELECT ... FOR UPDATE. Dialects without row locks
// (sqlite) drop the clause and rely on their database-level write lock.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uint64) (*account.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Take(&m, "id = ?", id).Error
	if err != nil {
		return nil, notFoundAs(err, domain.ErrAccountNotFound)
	}
	return mapAccountModelToDomain(&m), nil
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := Account{
		CustomerID:  a.CustomerID,
		AccountType: string(a.Type),
		Balance:     a.Balance.MinorUnits(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	a.ID = m.ID
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	return nil
}

// AdjustBalance issues a single conditional UPDATE so the sufficiency check and the
// write cannot be separated by a concurrent writer.
func (r *accountRepository) AdjustBalance(ctx context.Context, id uint64, delta money.Money) (*account.Account, error) {
	d := delta.MinorUnits()
	q := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id)
	if d < 0 {
		q = q.Where("balance + ? >= 0", d)
	}
	res := q.Updates(map[string]any{
		"balance":    gorm.Expr("balance + ?", d),
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: account %d cannot be debited %s",
			domain.ErrInsufficientFunds, id, delta.Negate())
	}
	return r.Get(ctx, id)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Append(ctx context.Context, rec *account.Record) error {
	m := Transaction{
		AccountID: rec.AccountID,
		TxType:    string(rec.Type),
		Amount:    rec.Amount.MinorUnits(),
		Reference: rec.Reference,
		Remarks:   rec.Remarks,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	rec.ID = m.ID
	rec.CreatedAt = m.CreatedAt
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, id uint64) (*account.Record, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).Take(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, domain.ErrRecordNotFound)
	}
	return mapTransactionModelToDomain(&m), nil
}

func (r *transactionRepository) Recent(ctx context.Context, accountID uint64, limit int) ([]*account.Record, error) {
	if limit <= 0 {
		return []*account.Record{}, nil
	}
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*account.Record, 0, len(rows))
	for i := range rows {
		out = append(out, mapTransactionModelToDomain(&rows[i]))
	}
	return out, nil
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Get(ctx context.Context, id uint64) (*customer.Customer, error) {
	var m Customer
	if err := r.db.WithContext(ctx).Take(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, domain.ErrCustomerNotFound)
	}
	return mapCustomerModelToDomain(&m), nil
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	m := Customer{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	return nil
}

func (r *customerRepository) List(ctx context.Context, limit int) ([]*customer.Customer, error) {
	if limit <= 0 {
		return []*customer.Customer{}, nil
	}
	var rows []Customer
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*customer.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, mapCustomerModelToDomain(&rows[i]))
	}
	return out, nil
}

// --- Mappers ---

func mapAccountModelToDomain(m *Account) *account.Account {
	return &account.Account{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Type:       account.Type(m.AccountType),
		Balance:    money.FromMinorUnits(m.Balance),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func mapTransactionModelToDomain(m *Transaction) *account.Record {
	return &account.Record{
		ID:        m.ID,
		AccountID: m.AccountID,
		Type:      account.TxType(m.TxType),
		Amount:    money.FromMinorUnits(m.Amount),
		Reference: m.Reference,
		Remarks:   m.Remarks,
		CreatedAt: m.CreatedAt,
	}
}

func mapCustomerModelToDomain(m *Customer) *customer.Customer {
	return &customer.Customer{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
	}
}
