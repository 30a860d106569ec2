package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/money"
	"github.com/versebank/banking/pkg/notification"
	"github.com/versebank/banking/pkg/repository"
)

// Deposit credits amount to the account and returns the recorded
// transaction. Shape: load, mutate, persist, publish, notify.
func (s *Service) Deposit(
	ctx context.Context,
	accountID uuid.UUID,
	amount decimal.Decimal,
	description string,
) (tx account.Transaction, err error) {
	logger := s.logger.With("accountID", accountID, "amount", amount)
	defer func() {
		if err != nil {
			logger.Error("Deposit failed", "error", err)
		} else {
			logger.Info("Deposit successful", "transactionID", tx.ID())
		}
	}()

	amt, err := money.New(amount)
	if err != nil || !amt.IsPositive() {
		return account.Transaction{}, money.ErrInvalidAmount
	}
	tx, err = account.NewTransaction(amt, description, account.KindDeposit)
	if err != nil {
		return account.Transaction{}, err
	}

	var events []account.Event
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := s.load(ctx, repo, accountID)
		if err != nil {
			return err
		}
		ev, err := a.Deposit(tx)
		if err != nil {
			return err
		}
		events = append(events, ev)
		return repo.Save(ctx, a)
	})
	if err != nil {
		return account.Transaction{}, err
	}

	if s.domain.IsLargeTransaction(amt) {
		events = append(events, account.NewLargeTransactionDetected(accountID, amt, account.KindDeposit))
	}
	s.publish(ctx, events...)
	s.notify(ctx, accountID, notification.OpDeposit,
		fmt.Sprintf("Deposit of %s - %s", amt, description))
	return tx, nil
}

// Withdraw debits amount from the account and returns the recorded
// transaction. ErrInsufficientFunds leaves the account untouched.
func (s *Service) Withdraw(
	ctx context.Context,
	accountID uuid.UUID,
	amount decimal.Decimal,
	description string,
) (tx account.Transaction, err error) {
	logger := s.logger.With("accountID", accountID, "amount", amount)
	defer func() {
		if err != nil {
			logger.Error("Withdraw failed", "error", err)
		} else {
			logger.Info("Withdraw successful", "transactionID", tx.ID())
		}
	}()

	amt, err := money.New(amount)
	if err != nil || !amt.IsPositive() {
		return account.Transaction{}, money.ErrInvalidAmount
	}
	tx, err = account.NewTransaction(amt, description, account.KindWithdrawal)
	if err != nil {
		return account.Transaction{}, err
	}

	var events []account.Event
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := s.load(ctx, repo, accountID)
		if err != nil {
			return err
		}
		ev, err := a.Withdraw(tx)
		if err != nil {
			return err
		}
		events = append(events, ev)
		return repo.Save(ctx, a)
	})
	if err != nil {
		return account.Transaction{}, err
	}

	if s.domain.IsLargeTransaction(amt) {
		events = append(events, account.NewLargeTransactionDetected(accountID, amt, account.KindWithdrawal))
	}
	s.publish(ctx, events...)
	s.notify(ctx, accountID, notification.OpWithdrawal,
		fmt.Sprintf("Withdrawal of %s - %s", amt, description))
	return tx, nil
}

// load fetches an account, wrapping a miss with the offending id.
func (s *Service) load(ctx context.Context, repo repository.AccountRepository, id uuid.UUID) (*account.Account, error) {
	a, err := repo.Get(ctx, id)
	if errors.Is(err, account.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: %s", account.ErrAccountNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
