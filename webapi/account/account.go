package account

import (
	"strconv"

	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/service/banking"
	"github.com/amirasaad/bankledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers HTTP routes for account operations.
//
// Routes:
//   - POST /accounts                   : Open an account for an existing customer.
//   - GET  /accounts/:id               : Account summary with the most recent transactions.
//   - GET  /accounts/:id/transactions  : Most recent transactions, newest first (?limit=).
//   - POST /accounts/:id/deposit       : Deposit funds.
//   - POST /accounts/:id/withdraw      : Withdraw funds.
//   - POST /transfers                  : Move funds between two accounts.
//   - GET  /transactions/:id           : A single ledger record.
func Routes(app *fiber.App, svc *banking.Service) {
	app.Post("/accounts", OpenAccount(svc))
	app.Get("/accounts/:id", GetSummary(svc))
	app.Get("/accounts/:id/transactions", ListTransactions(svc))
	app.Post("/accounts/:id/deposit", Deposit(svc))
	app.Post("/accounts/:id/withdraw", Withdraw(svc))
	app.Post("/transfers", Transfer(svc))
	app.Get("/transactions/:id", GetTransaction(svc))
}

func parseAmount(c *fiber.Ctx, raw string) (money.Money, bool, error) {
	amount, err := money.Parse(raw)
	if err != nil {
		return money.Zero, false, common.ProblemDetailsJSON(c, "Invalid amount", err)
	}
	return amount, true, nil
}

// OpenAccount opens an account. A positive initial_deposit is recorded as the first
// ledger entry.
func OpenAccount(svc *banking.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[OpenAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		initial := money.Zero
		if input.InitialDeposit != "" {
			var ok bool
			if initial, ok, err = parseAmount(c, input.InitialDeposit); !ok {
				return err
			}
		}
		accType := input.Type
		if accType == "" {
			accType = string(account.TypeSavings)
		}
		a, err := svc.OpenAccount(c.UserContext(), input.CustomerID, accType, initial)
		if err != nil {
			log.Errorf("Failed to open account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to open account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", toAccountDTO(a))
	}
}

// GetSummary returns the account, its owner and the most recent transactions.
func GetSummary(svc *banking.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseIDParam(c, "id")
		if id == 0 {
			return err
		}
		sum, err := svc.AccountSummary(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account summary", toSummaryDTO(sum))
	}
}

// ListTransactions returns up to ?limit= records for the account, newest first.
func ListTransactions(svc *banking.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseIDParam(c, "id")
		if id == 0 {
			return err
		}
		limit := c.QueryInt("limit", 10)
		if limit <= 0 || limit > 100 {
			return common.ProblemDetailsJSON(c, "Invalid limit", nil, "limit must be between 1 and 100", fiber.StatusBadRequest)
		}
		// Resolve the account first so an unknown id is a 404, not an empty list.
		if _, err := svc.AccountSummary(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load account", err)
		}
		recs, err := svc.Ledger().Recent(c.UserContext(), id, limit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", toTransactionDTOs(recs))
	}
}

// Deposit credits the account.
func Deposit(svc *banking.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseIDParam(c, "id")
		if id == 0 {
			return err
		}
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		amount, ok, err := parseAmount(c, input.Amount)
		if !ok {
			return err
		}
		m, err := svc.Deposit(c.UserContext(), id, amount)
		if err != nil {
			log.Errorf("Failed to deposit: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", toMovementDTO(m))
	}
}

// Withdraw debits the account.
func Withdraw(svc *banking.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseIDParam(c, "id")
		if id == 0 {
			return err
		}
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		amount, ok, err := parseAmount(c, input.Amount)
		if !ok {
			return err
		}
		m, err := svc.Withdraw(c.UserContext(), id, amount)
		if err != nil {
			log.Errorf("Failed to withdraw: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", toMovementDTO(m))
	}
}

// Transfer moves funds between two accounts atomically.
func Transfer(svc *banking.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		amount, ok, err := parseAmount(c, input.Amount)
		if !ok {
			return err
		}
		res, err := svc.Transfer(c.UserContext(), input.FromAccountID, input.ToAccountID, amount)
		if err != nil {
			log.Errorf("Failed to transfer: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", toTransferDTO(res))
	}
}

// GetTransaction returns one ledger record by id.
func GetTransaction(svc *banking.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseIDParam(c, "id")
		if id == 0 {
			return err
		}
		rec, err := svc.Ledger().Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction "+strconv.FormatUint(id, 10)+" unavailable", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction fetched", toTransactionDTO(rec))
	}
}
