package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_TypeSafeMethods(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)

	uow := NewUoW(db)

	// Outside a transaction
	accountRepo, err := uow.AccountRepository()
	require.NoError(err)
	assert.IsType(&accountRepository{}, accountRepo)

	transactionRepo, err := uow.TransactionRepository()
	require.NoError(err)
	assert.IsType(&transactionRepository{}, transactionRepo)

	customerRepo, err := uow.CustomerRepository()
	require.NoError(err)
	assert.IsType(&customerRepository{}, customerRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		accountRepo, err := txUow.AccountRepository()
		require.NoError(err)
		assert.Same(txUow.(*UoW).tx, accountRepo.(*accountRepository).db)

		customerRepo, err := txUow.CustomerRepository()
		require.NoError(err)
		assert.NotNil(customerRepo)
		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return domain.ErrInsufficientFunds
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_BeginFailureIsPersistence(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.False(t, called)
}

func TestUoW_CommitFailureIsPersistence(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error { return nil })
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestUoW_NestedDoJoinsOuterTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	// A single BEGIN/COMMIT pair proves the inner Do did not open its own transaction.
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(outer repository.UnitOfWork) error {
		return outer.Do(context.Background(), func(inner repository.UnitOfWork) error {
			assert.Same(t, outer, inner)
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
