package account

import (
	"time"

	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/service/banking"
	"github.com/amirasaad/bankledger/pkg/service/transfer"
	"github.com/amirasaad/bankledger/webapi/customer"
)

//revive:disable

// OpenAccountRequest represents the request body for opening an account.
type OpenAccountRequest struct {
	CustomerID     uint64 `json:"customer_id" validate:"required,gt=0"`
	Type           string `json:"type" validate:"omitempty,max=20"`
	InitialDeposit string `json:"initial_deposit" validate:"omitempty,max=32"`
}

// AmountRequest is the body of deposit and withdraw requests. Amounts are decimal
// strings with at most two fractional digits, e.g. "30.00".
type AmountRequest struct {
	Amount string `json:"amount" validate:"required,max=32"`
}

// TransferRequest represents the request body for transferring funds between accounts.
type TransferRequest struct {
	FromAccountID uint64 `json:"from_account_id" validate:"required,gt=0"`
	ToAccountID   uint64 `json:"to_account_id" validate:"required,gt=0"`
	Amount        string `json:"amount" validate:"required,max=32"`
}

// AccountDTO is the API representation of an account.
type AccountDTO struct {
	ID         uint64    `json:"id"`
	CustomerID uint64    `json:"customer_id"`
	Type       string    `json:"type"`
	Balance    string    `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TransactionDTO is the API representation of a ledger record.
type TransactionDTO struct {
	ID        uint64    `json:"id"`
	AccountID uint64    `json:"account_id"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"`
	Reference string    `json:"reference"`
	Remarks   string    `json:"remarks"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementDTO is returned by deposit and withdraw.
type MovementDTO struct {
	Account     AccountDTO     `json:"account"`
	Transaction TransactionDTO `json:"transaction"`
}

// TransferDTO is returned by a committed transfer.
type TransferDTO struct {
	Reference string         `json:"reference"`
	Amount    string         `json:"amount"`
	From      AccountDTO     `json:"from"`
	To        AccountDTO     `json:"to"`
	Out       TransactionDTO `json:"out"`
	In        TransactionDTO `json:"in"`
}

// SummaryDTO is the account summary view.
type SummaryDTO struct {
	Account      AccountDTO           `json:"account"`
	Customer     customer.CustomerDTO `json:"customer"`
	Transactions []TransactionDTO     `json:"transactions"`
}

func toAccountDTO(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Type:       string(a.Type),
		Balance:    a.Balance.String(),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toTransactionDTO(r *account.Record) TransactionDTO {
	return TransactionDTO{
		ID:        r.ID,
		AccountID: r.AccountID,
		Type:      string(r.Type),
		Amount:    r.Amount.String(),
		Reference: r.Reference.String(),
		Remarks:   r.Remarks,
		CreatedAt: r.CreatedAt,
	}
}

func toTransactionDTOs(rs []*account.Record) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, toTransactionDTO(r))
	}
	return out
}

func toMovementDTO(m *banking.Movement) MovementDTO {
	return MovementDTO{Account: toAccountDTO(m.Account), Transaction: toTransactionDTO(m.Record)}
}

func toTransferDTO(r *transfer.Result) TransferDTO {
	return TransferDTO{
		Reference: r.Reference.String(),
		Amount:    r.Amount.String(),
		From:      toAccountDTO(r.From),
		To:        toAccountDTO(r.To),
		Out:       toTransactionDTO(r.Out),
		In:        toTransactionDTO(r.In),
	}
}

func toSummaryDTO(s *banking.Summary) SummaryDTO {
	return SummaryDTO{
		Account:      toAccountDTO(s.Account),
		Customer:     customer.ToDTO(s.Customer),
		Transactions: toTransactionDTOs(s.Recent),
	}
}
