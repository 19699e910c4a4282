package infra_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/bankledger/infra"
	infra_repository "github.com/amirasaad/bankledger/infra/repository"
	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/service/banking"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// PostgresTestSuite runs the banking service against a real Postgres so that row
// locks, CHECK constraints and the versioned migrations are exercised.
type PostgresTestSuite struct {
	suite.Suite
	pgContainer *tcpostgres.PostgresContainer
	db          *gorm.DB
	svc         *banking.Service
	customerID  uint64
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}
	suite.Run(t, new(PostgresTestSuite))
}

func (s *PostgresTestSuite) SetupSuite() {
	ctx := context.Background()
	pg, err := tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("bank"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		s.T().Skipf("Postgres container unavailable: %v", err)
	}
	s.pgContainer = pg

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	cnf := config.Defaults().DB
	cnf.Driver = config.DriverPostgres
	cnf.Url = dsn
	_, filename, _, _ := runtime.Caller(0)
	cnf.MigrationsPath = filepath.Join(filepath.Dir(filename), "..", "internal", "migrations")

	s.db, err = infra.NewDBConnection(cnf, "test")
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(infra.Migrate(s.db, cnf, logger))
	// Running twice must be a no-op.
	s.Require().NoError(infra.Migrate(s.db, cnf, logger))

	s.svc = banking.New(infra_repository.NewUoW(s.db), logger, config.Defaults().Bank)
	c, err := s.svc.CreateCustomer(ctx, "Integration", "it@example.com", "")
	s.Require().NoError(err)
	s.customerID = c.ID
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}

func (s *PostgresTestSuite) open(balance string) uint64 {
	a, err := s.svc.OpenAccount(context.Background(), s.customerID, "savings", money.MustParse(balance))
	s.Require().NoError(err)
	return a.ID
}

func (s *PostgresTestSuite) balance(id uint64) string {
	sum, err := s.svc.AccountSummary(context.Background(), id)
	s.Require().NoError(err)
	return sum.Account.Balance.String()
}

func (s *PostgresTestSuite) TestTransferScenario() {
	ctx := context.Background()
	a, b := s.open("100.00"), s.open("50.00")

	res, err := s.svc.Transfer(ctx, a, b, money.MustParse("30.00"))
	s.Require().NoError(err)
	s.Equal("70.00", s.balance(a))
	s.Equal("80.00", s.balance(b))
	s.Equal(res.Out.Reference, res.In.Reference)

	_, err = s.svc.Withdraw(ctx, a, money.MustParse("150.00"))
	s.ErrorIs(err, domain.ErrInsufficientFunds)
	s.Equal("70.00", s.balance(a))
}

func (s *PostgresTestSuite) TestConcurrentWithdrawals() {
	a := s.open("100.00")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.svc.Withdraw(context.Background(), a, money.MustParse("60.00"))
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			s.ErrorIs(err, domain.ErrInsufficientFunds)
			failed++
		}
	}
	s.Equal(1, failed)
	s.Equal("40.00", s.balance(a))
}

func (s *PostgresTestSuite) TestOpposingTransfersDoNotDeadlock() {
	a, b := s.open("1000.00"), s.open("1000.00")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.svc.Transfer(context.Background(), a, b, money.MustParse("5.00"))
			s.NoError(err)
		}()
		go func() {
			defer wg.Done()
			_, err := s.svc.Transfer(context.Background(), b, a, money.MustParse("2.00"))
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.Equal("940.00", s.balance(a))
	s.Equal("1060.00", s.balance(b))
}
