package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/customer"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, balance string) *account.Account {
	t.Helper()
	ctx := context.Background()
	c, err := customer.New("Ada Lovelace", "ada@example.com", "")
	require.NoError(t, err)
	require.NoError(t, NewCustomerRepository(db).Create(ctx, c))

	acc, err := account.New().
		WithCustomerID(c.ID).
		WithBalance(money.MustParse(balance)).
		Build()
	require.NoError(t, err)
	require.NoError(t, NewAccountRepository(db).Create(ctx, acc))
	return acc
}

func TestAccountRepository_CreateAndGet(t *testing.T) {
	db := newSQLiteDB(t)
	acc := seedAccount(t, db, "100.00")
	require.NotZero(t, acc.ID)

	got, err := NewAccountRepository(db).Get(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Equal(t, acc.CustomerID, got.CustomerID)
	assert.Equal(t, account.TypeSavings, got.Type)
	assert.True(t, got.Balance.Equals(money.MustParse("100.00")))
}

func TestAccountRepository_GetMissing(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewAccountRepository(db)

	_, err := repo.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetForUpdate(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountRepository_AdjustBalance(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()
	acc := seedAccount(t, db, "100.00")

	updated, err := repo.AdjustBalance(ctx, acc.ID, money.MustParse("50.25"))
	require.NoError(t, err)
	assert.Equal(t, "150.25", updated.Balance.String())

	updated, err = repo.AdjustBalance(ctx, acc.ID, money.MustParse("-150.25"))
	require.NoError(t, err)
	assert.True(t, updated.Balance.IsZero())

	_, err = repo.AdjustBalance(ctx, acc.ID, money.MustParse("-0.01"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = repo.AdjustBalance(ctx, acc.ID+100, money.MustParse("1.00"))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	got, err := repo.Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero(), "failed debit must not change the balance")
}

func TestTransactionRepository_AppendAndRecent(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	acc := seedAccount(t, db, "0")

	var ids []uint64
	for _, amt := range []string{"1.00", "2.00", "3.00"} {
		rec, err := account.NewRecord(acc.ID, account.TxDeposit, money.MustParse(amt), account.RemarkDeposit, uuid.Nil)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, rec))
		require.NotZero(t, rec.ID)
		require.False(t, rec.CreatedAt.IsZero())
		ids = append(ids, rec.ID)
	}

	recent, err := repo.Recent(ctx, acc.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)
	assert.Equal(t, account.TxDeposit, recent[0].Type)
	assert.Equal(t, "3.00", recent[0].Amount.String())

	none, err := repo.Recent(ctx, acc.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	other, err := repo.Recent(ctx, acc.ID+1, 10)
	require.NoError(t, err)
	assert.Empty(t, other)

	got, err := repo.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, account.RemarkDeposit, got.Remarks)
	assert.NotEqual(t, uuid.Nil, got.Reference)

	_, err = repo.Get(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestCustomerRepository_List(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		c, err := customer.New(name, "", "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, c))
	}

	list, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Carol", list[0].Name)
	assert.Equal(t, "Bob", list[1].Name)

	_, err = repo.Get(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestUoW_SQLiteRollbackDiscardsAllWrites(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	acc := seedAccount(t, db, "10.00")
	uow := NewUoW(db)

	err := uow.Do(ctx, func(u repository.UnitOfWork) error {
		accounts, err := u.AccountRepository()
		if err != nil {
			return err
		}
		ledger, err := u.TransactionRepository()
		if err != nil {
			return err
		}
		if _, err := accounts.AdjustBalance(ctx, acc.ID, money.MustParse("5.00")); err != nil {
			return err
		}
		rec, err := account.NewRecord(acc.ID, account.TxDeposit, money.MustParse("5.00"), account.RemarkDeposit, uuid.Nil)
		if err != nil {
			return err
		}
		if err := ledger.Append(ctx, rec); err != nil {
			return err
		}
		return domain.ErrValidation
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	got, err := NewAccountRepository(db).Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", got.Balance.String())

	recent, err := NewTransactionRepository(db).Recent(ctx, acc.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestAccountRepository_AdjustBalanceSQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`UPDATE "accounts" SET .+ WHERE id = \$\d+ AND balance \+ \$\d+ >= 0`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "account_type", "balance"}).
			AddRow(7, 1, "SAVINGS", 500))

	_, err := repo.AdjustBalance(context.Background(), 7, money.MustParse("-10.00"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetForUpdateSQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "account_type", "balance"}).
			AddRow(7, 1, "CURRENT", 1250))

	acc, err := repo.GetForUpdate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), acc.ID)
	assert.Equal(t, account.TypeCurrent, acc.Type)
	assert.Equal(t, "12.50", acc.Balance.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
