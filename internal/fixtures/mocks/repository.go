// Package mocks holds testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/customer"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// UnitOfWork is a mock repository.UnitOfWork. Do runs fn against the mock itself
// unless a return value has been configured with On("Do", ...).
type UnitOfWork struct {
	mock.Mock
}

func NewUnitOfWork(t testingT) *UnitOfWork {
	m := &UnitOfWork{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	for _, c := range m.ExpectedCalls {
		if c.Method == "Do" {
			return m.Called(ctx, fn).Error(0)
		}
	}
	return fn(m)
}

func (m *UnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.AccountRepository)
	return repo, args.Error(1)
}

func (m *UnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.TransactionRepository)
	return repo, args.Error(1)
}

func (m *UnitOfWork) CustomerRepository() (repository.CustomerRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.CustomerRepository)
	return repo, args.Error(1)
}

// AccountRepository is a mock repository.AccountRepository.
type AccountRepository struct {
	mock.Mock
}

func NewAccountRepository(t testingT) *AccountRepository {
	m := &AccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AccountRepository) Get(ctx context.Context, id uint64) (*account.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *AccountRepository) GetForUpdate(ctx context.Context, id uint64) (*account.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AccountRepository) AdjustBalance(ctx context.Context, id uint64, delta money.Money) (*account.Account, error) {
	args := m.Called(ctx, id, delta)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

// TransactionRepository is a mock repository.TransactionRepository.
type TransactionRepository struct {
	mock.Mock
}

func NewTransactionRepository(t testingT) *TransactionRepository {
	m := &TransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TransactionRepository) Append(ctx context.Context, rec *account.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *TransactionRepository) Get(ctx context.Context, id uint64) (*account.Record, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*account.Record)
	return r, args.Error(1)
}

func (m *TransactionRepository) Recent(ctx context.Context, accountID uint64, limit int) ([]*account.Record, error) {
	args := m.Called(ctx, accountID, limit)
	rs, _ := args.Get(0).([]*account.Record)
	return rs, args.Error(1)
}

// CustomerRepository is a mock repository.CustomerRepository.
type CustomerRepository struct {
	mock.Mock
}

func NewCustomerRepository(t testingT) *CustomerRepository {
	m := &CustomerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CustomerRepository) Get(ctx context.Context, id uint64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CustomerRepository) List(ctx context.Context, limit int) ([]*customer.Customer, error) {
	args := m.Called(ctx, limit)
	cs, _ := args.Get(0).([]*customer.Customer)
	return cs, args.Error(1)
}
