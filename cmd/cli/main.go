package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/versebank/banking/config"
	"github.com/versebank/banking/infra/initializer"
	"github.com/versebank/banking/pkg/domain/account"
	accountsvc "github.com/versebank/banking/pkg/service/account"
)

var (
	success = color.New(color.FgGreen).PrintfFunc()
	fail    = color.New(color.FgRed).FprintfFunc()
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fail(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		fail(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	svc := accountsvc.NewService(*deps)

	if err := dispatch(context.Background(), svc, os.Args[1], os.Args[2:]); err != nil {
		fail(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  open <customer_id> <type> [initial_balance]")
	fmt.Println("  deposit <account_id> <amount> <description>")
	fmt.Println("  withdraw <account_id> <amount> <description>")
	fmt.Println("  transfer <source_id> <target_id> <amount> <description>")
	fmt.Println("  balance <account_id>")
	fmt.Println("  transactions <account_id>")
	fmt.Println("  accounts <customer_id>")
}

func dispatch(ctx context.Context, svc *accountsvc.Service, cmd string, args []string) error {
	switch cmd {
	case "open":
		if len(args) < 2 {
			return fmt.Errorf("usage: open <customer_id> <type> [initial_balance]")
		}
		accountType, err := account.ParseAccountType(args[1])
		if err != nil {
			return err
		}
		initial := decimal.Zero
		if len(args) > 2 {
			initial, err = decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid initial balance: %w", err)
			}
		}
		a, err := svc.OpenAccount(ctx, args[0], accountType, initial)
		if err != nil {
			return err
		}
		success("Account opened: ID=%s Type=%s Balance=%s\n", a.ID(), a.Type(), a.Balance())

	case "deposit":
		if len(args) < 3 {
			return fmt.Errorf("usage: deposit <account_id> <amount> <description>")
		}
		id, amount, err := parseIDAndAmount(args[0], args[1])
		if err != nil {
			return err
		}
		tx, err := svc.Deposit(ctx, id, amount, args[2])
		if err != nil {
			return err
		}
		balance, err := svc.GetBalance(ctx, id)
		if err != nil {
			return err
		}
		success("Deposited %s to account %s. New balance: %s\n", tx.Amount(), id, balance)

	case "withdraw":
		if len(args) < 3 {
			return fmt.Errorf("usage: withdraw <account_id> <amount> <description>")
		}
		id, amount, err := parseIDAndAmount(args[0], args[1])
		if err != nil {
			return err
		}
		tx, err := svc.Withdraw(ctx, id, amount, args[2])
		if err != nil {
			return err
		}
		balance, err := svc.GetBalance(ctx, id)
		if err != nil {
			return err
		}
		success("Withdrew %s from account %s. New balance: %s\n", tx.Amount(), id, balance)

	case "transfer":
		if len(args) < 4 {
			return fmt.Errorf("usage: transfer <source_id> <target_id> <amount> <description>")
		}
		sourceID, amount, err := parseIDAndAmount(args[0], args[2])
		if err != nil {
			return err
		}
		targetID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid target account id: %w", err)
		}
		if err := svc.Transfer(ctx, sourceID, targetID, amount, args[3]); err != nil {
			return err
		}
		balance, err := svc.GetBalance(ctx, sourceID)
		if err != nil {
			return err
		}
		success("Transferred %s from %s to %s. Source balance: %s\n", args[2], sourceID, targetID, balance)

	case "balance":
		if len(args) < 1 {
			return fmt.Errorf("usage: balance <account_id>")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		balance, err := svc.GetBalance(ctx, id)
		if err != nil {
			return err
		}
		success("Balance of %s: %s\n", id, balance)

	case "transactions":
		if len(args) < 1 {
			return fmt.Errorf("usage: transactions <account_id>")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		txs, err := svc.GetTransactions(ctx, id)
		if err != nil {
			return err
		}
		for _, tx := range txs {
			fmt.Printf("%s  %-10s  %10s  %s\n",
				tx.Timestamp().Format("2006-01-02 15:04:05"), tx.Kind(), tx.Amount(), tx.Description())
		}

	case "accounts":
		if len(args) < 1 {
			return fmt.Errorf("usage: accounts <customer_id>")
		}
		summaries, err := svc.ListByCustomer(ctx, args[0])
		if err != nil {
			return err
		}
		for _, s := range summaries {
			fmt.Printf("%s  %-10s  %s\n", s.AccountID, s.AccountType, s.Balance)
		}

	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

func parseIDAndAmount(rawID, rawAmount string) (uuid.UUID, decimal.Decimal, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("invalid account id: %w", err)
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	return id, amount, nil
}
