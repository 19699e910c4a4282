package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/domain/money"
)

// Type is the account product tag. It is free-form but stored upper-case.
type Type string

// Well-known account types.
const (
	TypeSavings Type = "SAVINGS"
	TypeCurrent Type = "CURRENT"
)

const maxTypeLength = 20

// ParseType normalises an account type tag.
func ParseType(s string) (Type, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return "", fmt.Errorf("%w: account type is required", domain.ErrValidation)
	}
	if len(t) > maxTypeLength {
		return "", fmt.Errorf("%w: account type longer than %d characters", domain.ErrValidation, maxTypeLength)
	}
	return Type(t), nil
}

// Account is a customer's balance holder.
//
// Invariants:
//   - An account always references an existing customer.
//   - The balance never goes negative.
//   - Balance only changes through AccountRepository.AdjustBalance.
type Account struct {
	ID         uint64
	CustomerID uint64
	Type       Type
	Balance    money.Money
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id         uint64
	customerID uint64
	accType    string
	balance    money.Money
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates a new Builder defaulting to a SAVINGS account.
func New() *Builder {
	return &Builder{
		accType:   string(TypeSavings),
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the ID. Only used when hydrating from a store.
func (b *Builder) WithID(id uint64) *Builder {
	b.id = id
	return b
}

// WithCustomerID sets the owning customer. This is a mandatory field.
func (b *Builder) WithCustomerID(customerID uint64) *Builder {
	b.customerID = customerID
	return b
}

// WithType sets the account type tag.
func (b *Builder) WithType(t string) *Builder {
	b.accType = t
	return b
}

// WithBalance sets the opening balance.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.customerID == 0 {
		return nil, fmt.Errorf("%w: customer id is required", domain.ErrValidation)
	}
	t, err := ParseType(b.accType)
	if err != nil {
		return nil, err
	}
	if b.balance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", domain.ErrInvalidAmount)
	}
	return &Account{
		ID:         b.id,
		CustomerID: b.customerID,
		Type:       t,
		Balance:    b.balance,
		CreatedAt:  b.createdAt,
		UpdatedAt:  b.updatedAt,
	}, nil
}

// ValidateAmount rejects non-positive movement amounts.
func ValidateAmount(amount money.Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", domain.ErrInvalidAmount, amount)
	}
	return nil
}

// ValidateWithdraw checks that amount can be taken from the account.
func (a *Account) ValidateWithdraw(amount money.Money) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if a.Balance.LessThan(amount) {
		return fmt.Errorf("%w: account %d has %s, needs %s",
			domain.ErrInsufficientFunds, a.ID, a.Balance, amount)
	}
	return nil
}

// ValidateTransfer ensures that a funds transfer from this account to dest is valid.
func (a *Account) ValidateTransfer(dest *Account, amount money.Money) error {
	if a == nil || dest == nil {
		return domain.ErrAccountNotFound
	}
	if a.ID == dest.ID {
		return domain.ErrSameAccount
	}
	return a.ValidateWithdraw(amount)
}
