package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/google/uuid"
)

// TxType is the kind of balance-affecting event recorded in the ledger.
type TxType string

// Ledger entry types.
const (
	TxDeposit     TxType = "DEPOSIT"
	TxWithdraw    TxType = "WITHDRAW"
	TxTransferOut TxType = "TRANSFER_OUT"
	TxTransferIn  TxType = "TRANSFER_IN"
)

// Valid reports whether t is one of the known entry types.
func (t TxType) Valid() bool {
	switch t {
	case TxDeposit, TxWithdraw, TxTransferOut, TxTransferIn:
		return true
	}
	return false
}

// Record is an immutable ledger entry. ID and CreatedAt are assigned by the store.
type Record struct {
	ID        uint64
	AccountID uint64
	Type      TxType
	Amount    money.Money
	Reference uuid.UUID // shared by both legs of a transfer
	Remarks   string
	CreatedAt time.Time
}

// Remarks used for system generated entries.
const (
	RemarkDeposit        = "Deposit"
	RemarkWithdrawal     = "Withdrawal"
	RemarkInitialDeposit = "Initial deposit"
)

// TransferOutRemark describes the debit leg of a transfer.
func TransferOutRemark(to uint64) string {
	return fmt.Sprintf("Transfer to account %d", to)
}

// TransferInRemark describes the credit leg of a transfer.
func TransferInRemark(from uint64) string {
	return fmt.Sprintf("Transfer from account %d", from)
}

// NewRecord builds an unsaved ledger entry.
func NewRecord(accountID uint64, t TxType, amount money.Money, remarks string, ref uuid.UUID) (*Record, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, t)
	}
	if ref == uuid.Nil {
		ref = uuid.New()
	}
	return &Record{
		AccountID: accountID,
		Type:      t,
		Amount:    amount,
		Reference: ref,
		Remarks:   remarks,
	}, nil
}
