package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (c *cli) printMenu() {
	heading.Fprintln(c.out, "\n=== Simple Banking System ===") //nolint:errcheck
	fmt.Fprint(c.out, `1. Create customer
2. Create account
3. Deposit
4. Withdraw
5. Transfer
6. Show account
7. List customers
0. Exit
Choose: `) //nolint:errcheck
}

// prompt prints label and reads one line. ok is false once input is exhausted.
func (c *cli) prompt(label string) (string, bool) {
	if label != "" {
		fmt.Fprint(c.out, label) //nolint:errcheck
	}
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *cli) promptID(label string) (uint64, bool) {
	s, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := parseID(s)
	if err != nil {
		c.report(err) //nolint:errcheck
		return 0, true
	}
	return id, true
}

// menu runs the interactive loop until "0", end of input or ctx is done. Operation
// errors are printed and the loop continues.
func (c *cli) menu(ctx context.Context) {
	defer fmt.Fprintln(c.out, "Goodbye") //nolint:errcheck
	for ctx.Err() == nil {
		c.printMenu()
		line, ok := c.prompt("")
		if !ok {
			return
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid input") //nolint:errcheck
			continue
		}
		if choice == 0 {
			return
		}
		if !c.runChoice(ctx, choice) {
			return
		}
	}
}

// runChoice executes one menu entry. It returns false when input ran out mid-entry.
func (c *cli) runChoice(ctx context.Context, choice int) bool {
	switch choice {
	case 1:
		name, ok := c.prompt("Enter name: ")
		if !ok {
			return false
		}
		email, ok := c.prompt("Email: ")
		if !ok {
			return false
		}
		phone, ok := c.prompt("Phone: ")
		if !ok {
			return false
		}
		_ = c.createCustomer(ctx, name, email, phone)
	case 2:
		cid, ok := c.promptID("Enter customer id: ")
		if !ok {
			return false
		}
		accType, ok := c.prompt("Account type (SAVINGS/CURRENT): ")
		if !ok {
			return false
		}
		initial, ok := c.prompt("Initial deposit: ")
		if !ok {
			return false
		}
		if cid != 0 {
			_ = c.openAccount(ctx, cid, accType, initial)
		}
	case 3, 4:
		aid, ok := c.promptID("Account id: ")
		if !ok {
			return false
		}
		verb := "deposit"
		if choice == 4 {
			verb = "withdraw"
		}
		amount, ok := c.prompt("Amount to " + verb + ": ")
		if !ok {
			return false
		}
		if aid == 0 {
			break
		}
		if choice == 3 {
			_ = c.deposit(ctx, aid, amount)
		} else {
			_ = c.withdraw(ctx, aid, amount)
		}
	case 5:
		from, ok := c.promptID("From Account id: ")
		if !ok {
			return false
		}
		to, ok := c.promptID("To Account id: ")
		if !ok {
			return false
		}
		amount, ok := c.prompt("Amount: ")
		if !ok {
			return false
		}
		if from != 0 && to != 0 {
			_ = c.transfer(ctx, from, to, amount)
		}
	case 6:
		aid, ok := c.promptID("Account id: ")
		if !ok {
			return false
		}
		if aid != 0 {
			_ = c.show(ctx, aid)
		}
	case 7:
		_ = c.listCustomers(ctx, 0)
	default:
		fmt.Fprintln(c.out, "Unknown choice") //nolint:errcheck
	}
	return true
}
