// Package memory provides a process-local backend for the repository interfaces.
//
// Every unit of work holds a single store-wide lock for its whole duration, so units
// of work are strictly serialized. Writes are staged and only become visible when the
// unit of work commits.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/customer"
)

// Store holds committed state. The zero value is not usable; call NewStore.
type Store struct {
	// sem is a one-slot semaphore. A channel is used instead of sync.Mutex so that
	// waiting for the lock honours context cancellation.
	sem chan struct{}
	now func() time.Time

	customers map[uint64]customer.Customer
	accounts  map[uint64]account.Account
	records   map[uint64]account.Record
	// byAccount lists record ids per account in insertion order.
	byAccount map[uint64][]uint64

	lastCustomerID uint64
	lastAccountID  uint64
	lastRecordID   uint64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		sem:       make(chan struct{}, 1),
		now:       func() time.Time { return time.Now().UTC() },
		customers: make(map[uint64]customer.Customer),
		accounts:  make(map[uint64]account.Account),
		records:   make(map[uint64]account.Record),
		byAccount: make(map[uint64][]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: waiting for store lock: %w", domain.ErrPersistence, ctx.Err())
	}
}

func (s *Store) release() { <-s.sem }

// transact runs fn against a staging area and commits it when fn succeeds and ctx is
// still live.
func (s *Store) transact(ctx context.Context, fn func(tx *txState) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	tx := newTxState(s)
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.AsPersistence(err)
	}
	tx.commit()
	return nil
}

// txState stages writes on top of the committed store.
type txState struct {
	s *Store

	customers map[uint64]customer.Customer
	accounts  map[uint64]account.Account
	records   []account.Record

	lastCustomerID uint64
	lastAccountID  uint64
	lastRecordID   uint64
}

func newTxState(s *Store) *txState {
	return &txState{
		s:              s,
		customers:      make(map[uint64]customer.Customer),
		accounts:       make(map[uint64]account.Account),
		lastCustomerID: s.lastCustomerID,
		lastAccountID:  s.lastAccountID,
		lastRecordID:   s.lastRecordID,
	}
}

func (tx *txState) account(id uint64) (account.Account, bool) {
	if a, ok := tx.accounts[id]; ok {
		return a, true
	}
	a, ok := tx.s.accounts[id]
	return a, ok
}

func (tx *txState) customer(id uint64) (customer.Customer, bool) {
	if c, ok := tx.customers[id]; ok {
		return c, true
	}
	c, ok := tx.s.customers[id]
	return c, ok
}

func (tx *txState) record(id uint64) (account.Record, bool) {
	for i := range tx.records {
		if tx.records[i].ID == id {
			return tx.records[i], true
		}
	}
	r, ok := tx.s.records[id]
	return r, ok
}

func (tx *txState) commit() {
	s := tx.s
	for id, c := range tx.customers {
		s.customers[id] = c
	}
	for id, a := range tx.accounts {
		s.accounts[id] = a
	}
	for _, r := range tx.records {
		s.records[r.ID] = r
		s.byAccount[r.AccountID] = append(s.byAccount[r.AccountID], r.ID)
	}
	s.lastCustomerID = tx.lastCustomerID
	s.lastAccountID = tx.lastAccountID
	s.lastRecordID = tx.lastRecordID
}
