package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/bankledger/infra/initializer"
	"github.com/amirasaad/bankledger/pkg/app"
	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/fatih/color"
)

const usage = `Usage: bank <command> [arguments]

Commands:
  migrate                                     apply pending schema migrations
  customer create <name> [email] [phone]      register a customer
  customer list [limit]                       newest customers first
  account open <customer_id> [type] [initial] open an account
  deposit <account_id> <amount>
  withdraw <account_id> <amount>
  transfer <from_id> <to_id> <amount>
  show <account_id>                           account summary with recent transactions
  menu                                        interactive session
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	if err != nil {
		if !errors.Is(err, errUsage) {
			color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "Fatal error:", err) //nolint:errcheck
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage) //nolint:errcheck
		return errUsage
	}

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a := app.New(deps, cfg)
	defer a.Shutdown() //nolint:errcheck

	return newCLI(a.BankingService, in, out).dispatch(ctx, args)
}
