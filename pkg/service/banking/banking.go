// Package banking is the single entry point used by the command surfaces.
//
// Every operation validates its input before touching storage, runs under a bounded
// unit of work, and reports failures with the domain error taxonomy.
package banking

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/customer"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/amirasaad/bankledger/pkg/service/ledger"
	"github.com/amirasaad/bankledger/pkg/service/transfer"
	"github.com/google/uuid"
)

// Movement is the outcome of a single-account deposit or withdrawal.
type Movement struct {
	Record  *account.Record
	Account *account.Account
}

// Summary is a consistent snapshot of one account.
type Summary struct {
	Account  *account.Account
	Customer *customer.Customer
	Recent   []*account.Record
}

// Service provides customer, account and money movement operations.
type Service struct {
	uow       repository.UnitOfWork
	ledger    *ledger.Service
	transfers *transfer.Coordinator
	logger    *slog.Logger

	opTimeout    time.Duration
	summaryLimit int
	listLimit    int
}

// New wires the facade and its collaborators over uow. A nil cfg uses the defaults.
func New(uow repository.UnitOfWork, logger *slog.Logger, cfg *config.Bank) *Service {
	if cfg == nil {
		cfg = config.Defaults().Bank
	}
	l := ledger.New(uow, logger)
	return &Service{
		uow:          uow,
		ledger:       l,
		transfers:    transfer.NewCoordinator(uow, l, logger),
		logger:       logger,
		opTimeout:    cfg.OpTimeout,
		summaryLimit: cfg.SummaryLimit,
		listLimit:    cfg.ListLimit,
	}
}

// Ledger exposes the ledger service for read access.
func (s *Service) Ledger() *ledger.Service { return s.ledger }

func (s *Service) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// CreateCustomer registers a customer profile.
func (s *Service) CreateCustomer(ctx context.Context, name, email, phone string) (*customer.Customer, error) {
	logger := s.logger.With("name", name)
	c, err := customer.New(name, email, phone)
	if err != nil {
		logger.Warn("CreateCustomer rejected", "error", err)
		return nil, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, c)
	})
	if err != nil {
		err = domain.AsPersistence(err)
		logger.Error("CreateCustomer failed", "error", err)
		return nil, err
	}
	logger.Info("CreateCustomer successful", "customer_id", c.ID)
	return c, nil
}

// ListCustomers returns the newest customers first. limit <= 0 uses the configured default.
func (s *Service) ListCustomers(ctx context.Context, limit int) ([]*customer.Customer, error) {
	if limit <= 0 {
		limit = s.listLimit
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	list, err := repo.List(ctx, limit)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	return list, nil
}

// OpenAccount creates an account for an existing customer. A positive initial deposit
// writes exactly one DEPOSIT record in the same unit of work.
func (s *Service) OpenAccount(
	ctx context.Context,
	customerID uint64,
	accType string,
	initial money.Money,
) (*account.Account, error) {
	logger := s.logger.With("customer_id", customerID, "type", accType, "initial", initial.String())
	logger.Info("OpenAccount started")

	if initial.IsNegative() {
		logger.Warn("OpenAccount rejected: negative initial deposit")
		return nil, account.ValidateAmount(initial)
	}
	acc, err := account.New().
		WithCustomerID(customerID).
		WithType(accType).
		WithBalance(initial).
		Build()
	if err != nil {
		logger.Warn("OpenAccount rejected", "error", err)
		return nil, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if _, err := customers.Get(ctx, customerID); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := accounts.Create(ctx, acc); err != nil {
			return err
		}
		if !initial.IsPositive() {
			return nil
		}
		_, err = s.ledger.Append(ctx, uow, acc.ID, account.TxDeposit, initial,
			account.RemarkInitialDeposit, uuid.Nil)
		return err
	})
	if err != nil {
		err = domain.AsPersistence(err)
		logger.Error("OpenAccount failed", "error", err)
		return nil, err
	}
	logger.Info("OpenAccount successful", "account_id", acc.ID)
	return acc, nil
}

// Deposit credits amount and records a DEPOSIT entry atomically.
func (s *Service) Deposit(ctx context.Context, accountID uint64, amount money.Money) (*Movement, error) {
	return s.move(ctx, "Deposit", accountID, amount, amount, account.TxDeposit, account.RemarkDeposit)
}

// Withdraw debits amount and records a WITHDRAW entry atomically. The sufficiency check
// and the debit are a single conditional update.
func (s *Service) Withdraw(ctx context.Context, accountID uint64, amount money.Money) (*Movement, error) {
	return s.move(ctx, "Withdraw", accountID, amount, amount.Negate(), account.TxWithdraw, account.RemarkWithdrawal)
}

func (s *Service) move(
	ctx context.Context,
	op string,
	accountID uint64,
	amount, delta money.Money,
	t account.TxType,
	remarks string,
) (*Movement, error) {
	logger := s.logger.With("account_id", accountID, "amount", amount.String())
	logger.Info(op + " started")

	if err := account.ValidateAmount(amount); err != nil {
		logger.Warn(op+" rejected", "error", err)
		return nil, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	m := &Movement{}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if m.Account, err = repo.AdjustBalance(ctx, accountID, delta); err != nil {
			return err
		}
		m.Record, err = s.ledger.Append(ctx, uow, accountID, t, amount, remarks, uuid.Nil)
		return err
	})
	if err != nil {
		err = domain.AsPersistence(err)
		logger.Error(op+" failed", "error", err)
		return nil, err
	}
	logger.Info(op+" successful", "balance", m.Account.Balance.String(), "record_id", m.Record.ID)
	return m, nil
}

// Transfer delegates to the transfer coordinator under the operation timeout.
func (s *Service) Transfer(ctx context.Context, fromID, toID uint64, amount money.Money) (*transfer.Result, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.transfers.Transfer(ctx, fromID, toID, amount)
}

// AccountSummary reads the account, its owner and the most recent records in one unit
// of work so the three parts agree with each other.
func (s *Service) AccountSummary(ctx context.Context, accountID uint64) (*Summary, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	sum := &Summary{}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if sum.Account, err = accounts.Get(ctx, accountID); err != nil {
			return err
		}
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if sum.Customer, err = customers.Get(ctx, sum.Account.CustomerID); err != nil {
			return err
		}
		sum.Recent, err = s.ledger.RecentIn(ctx, uow, accountID, s.summaryLimit)
		return err
	})
	if err != nil {
		err = domain.AsPersistence(err)
		s.logger.Error("AccountSummary failed", "account_id", accountID, "error", err)
		return nil, err
	}
	return sum, nil
}
