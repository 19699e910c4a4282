package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/amirasaad/bankledger/pkg/domain/account"
	"github.com/amirasaad/bankledger/pkg/domain/customer"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/service/banking"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
)

const timestampLayout = "2006-01-02 15:04:05"

var (
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	heading = color.New(color.FgCyan, color.Bold)
	label   = color.New(color.Bold)
)

type cli struct {
	svc *banking.Service
	in  *bufio.Scanner
	out io.Writer
}

func newCLI(svc *banking.Service, in io.Reader, out io.Writer) *cli {
	return &cli{svc: svc, in: bufio.NewScanner(in), out: out}
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "migrate":
		// Schema migrations run while the backend is initialised.
		success.Fprintln(c.out, "Schema is up to date") //nolint:errcheck
		return nil
	case "customer":
		if len(rest) == 0 {
			return c.usageError("customer create|list")
		}
		switch rest[0] {
		case "create":
			if len(rest) < 2 {
				return c.usageError("customer create <name> [email] [phone]")
			}
			return c.createCustomer(ctx, rest[1], arg(rest, 2), arg(rest, 3))
		case "list":
			limit := 0
			if s := arg(rest, 1); s != "" {
				n, err := strconv.Atoi(s)
				if err != nil || n <= 0 {
					return c.usageError("customer list [limit]")
				}
				limit = n
			}
			return c.listCustomers(ctx, limit)
		}
		return c.usageError("customer create|list")
	case "account":
		if len(rest) < 2 || rest[0] != "open" {
			return c.usageError("account open <customer_id> [type] [initial]")
		}
		id, err := parseID(rest[1])
		if err != nil {
			return c.report(err)
		}
		return c.openAccount(ctx, id, arg(rest, 2), arg(rest, 3))
	case "deposit", "withdraw":
		if len(rest) != 2 {
			return c.usageError(cmd + " <account_id> <amount>")
		}
		id, err := parseID(rest[0])
		if err != nil {
			return c.report(err)
		}
		if cmd == "deposit" {
			return c.deposit(ctx, id, rest[1])
		}
		return c.withdraw(ctx, id, rest[1])
	case "transfer":
		if len(rest) != 3 {
			return c.usageError("transfer <from_id> <to_id> <amount>")
		}
		from, err := parseID(rest[0])
		if err != nil {
			return c.report(err)
		}
		to, err := parseID(rest[1])
		if err != nil {
			return c.report(err)
		}
		return c.transfer(ctx, from, to, rest[2])
	case "show":
		if len(rest) != 1 {
			return c.usageError("show <account_id>")
		}
		id, err := parseID(rest[0])
		if err != nil {
			return c.report(err)
		}
		return c.show(ctx, id)
	case "menu":
		c.menu(ctx)
		return nil
	}
	fmt.Fprintf(c.out, "Unknown command: %s\n\n%s", cmd, usage) //nolint:errcheck
	return errUsage
}

func (c *cli) createCustomer(ctx context.Context, name, email, phone string) error {
	cust, err := c.svc.CreateCustomer(ctx, name, email, phone)
	if err != nil {
		return c.report(err)
	}
	success.Fprintf(c.out, "Created customer id: %d\n", cust.ID) //nolint:errcheck
	return nil
}

func (c *cli) listCustomers(ctx context.Context, limit int) error {
	list, err := c.svc.ListCustomers(ctx, limit)
	if err != nil {
		return c.report(err)
	}
	fmt.Fprintln(c.out, customerTable(list)) //nolint:errcheck
	return nil
}

func (c *cli) openAccount(ctx context.Context, customerID uint64, accType, initial string) error {
	if accType == "" {
		accType = string(account.TypeSavings)
	}
	amount := money.Zero
	if initial != "" {
		var err error
		if amount, err = money.Parse(initial); err != nil {
			return c.report(err)
		}
	}
	acc, err := c.svc.OpenAccount(ctx, customerID, accType, amount)
	if err != nil {
		return c.report(err)
	}
	success.Fprintf(c.out, "Created account id: %d\n", acc.ID) //nolint:errcheck
	return nil
}

func (c *cli) deposit(ctx context.Context, accountID uint64, raw string) error {
	amount, err := money.Parse(raw)
	if err != nil {
		return c.report(err)
	}
	m, err := c.svc.Deposit(ctx, accountID, amount)
	if err != nil {
		return c.report(err)
	}
	success.Fprintf(c.out, "Deposit successful. New balance: %s\n", m.Account.Balance) //nolint:errcheck
	return nil
}

func (c *cli) withdraw(ctx context.Context, accountID uint64, raw string) error {
	amount, err := money.Parse(raw)
	if err != nil {
		return c.report(err)
	}
	m, err := c.svc.Withdraw(ctx, accountID, amount)
	if err != nil {
		return c.report(err)
	}
	success.Fprintf(c.out, "Withdrawal successful. New balance: %s\n", m.Account.Balance) //nolint:errcheck
	return nil
}

func (c *cli) transfer(ctx context.Context, from, to uint64, raw string) error {
	amount, err := money.Parse(raw)
	if err != nil {
		return c.report(err)
	}
	res, err := c.svc.Transfer(ctx, from, to, amount)
	if err != nil {
		return c.report(err)
	}
	success.Fprintf(c.out, "Transfer successful. Reference: %s\n", res.Reference) //nolint:errcheck
	fmt.Fprintf(c.out, "  %d: %s\n  %d: %s\n", res.From.ID, res.From.Balance, res.To.ID, res.To.Balance) //nolint:errcheck
	return nil
}

func (c *cli) show(ctx context.Context, accountID uint64) error {
	sum, err := c.svc.AccountSummary(ctx, accountID)
	if err != nil {
		return c.report(err)
	}
	a, cust := sum.Account, sum.Customer
	heading.Fprintln(c.out, "---- Account Summary ----") //nolint:errcheck
	field := func(name, value string) {
		label.Fprintf(c.out, "%s: ", name) //nolint:errcheck
		fmt.Fprintln(c.out, value)          //nolint:errcheck
	}
	field("Account ID", strconv.FormatUint(a.ID, 10))
	field("Customer", fmt.Sprintf("%s (Email: %s, Phone: %s)", cust.Name, orNA(cust.Email), orNA(cust.Phone)))
	field("Account Type", string(a.Type))
	field("Balance", a.Balance.String())
	label.Fprintln(c.out, "Recent transactions:") //nolint:errcheck
	fmt.Fprintln(c.out, recordTable(sum.Recent))  //nolint:errcheck
	return nil
}

// report prints an operation error and returns it to the caller.
func (c *cli) report(err error) error {
	failure.Fprintln(c.out, "Error:", err) //nolint:errcheck
	return err
}

func (c *cli) usageError(form string) error {
	fmt.Fprintln(c.out, "Usage: bank", form) //nolint:errcheck
	return errUsage
}

func customerTable(list []*customer.Customer) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Email", "Phone", "Created")
	for _, cust := range list {
		t.Row(strconv.FormatUint(cust.ID, 10), cust.Name, cust.Email, cust.Phone,
			cust.CreatedAt.Format(timestampLayout))
	}
	return t.String()
}

func recordTable(recs []*account.Record) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Type", "Amount", "Timestamp", "Remarks")
	for _, r := range recs {
		t.Row(strconv.FormatUint(r.ID, 10), string(r.Type), r.Amount.String(),
			r.CreatedAt.Format(timestampLayout), r.Remarks)
	}
	return t.String()
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
