package account

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/money"
	"github.com/versebank/banking/pkg/repository"
)

// AccountSummary is the read-side projection used by customer listings.
type AccountSummary struct {
	AccountID   uuid.UUID           `json:"account_id"`
	CustomerID  string              `json:"customer_id"`
	AccountType account.AccountType `json:"account_type"`
	Balance     money.Balance       `json:"balance"`
}

// GetAccount loads a single account with its transaction log.
func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	var a *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = s.load(ctx, repo, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetBalance returns the account's current balance.
func (s *Service) GetBalance(ctx context.Context, accountID uuid.UUID) (money.Balance, error) {
	a, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return money.Zero(), err
	}
	return a.Balance(), nil
}

// GetTransactions returns the account's transaction log in application order.
func (s *Service) GetTransactions(ctx context.Context, accountID uuid.UUID) ([]account.Transaction, error) {
	a, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return a.Transactions(), nil
}

// HasSufficientBalance reports whether the account's balance covers amount.
// A missing account answers false, indistinguishable from insufficient
// funds; callers needing the distinction use GetAccount.
func (s *Service) HasSufficientBalance(ctx context.Context, accountID uuid.UUID, amount money.Balance) (bool, error) {
	a, err := s.GetAccount(ctx, accountID)
	if errors.Is(err, account.ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.HasSufficientBalance(amount), nil
}

// ListByCustomer returns a summary for each account the customer owns.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]AccountSummary, error) {
	var accounts []*account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = repo.ListByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	summaries := make([]AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		summaries = append(summaries, AccountSummary{
			AccountID:   a.ID(),
			CustomerID:  a.CustomerID(),
			AccountType: a.Type(),
			Balance:     a.Balance(),
		})
	}
	return summaries, nil
}

// ProjectedInterest returns the simplified annual interest the account would
// earn at its current balance. Zero for non-savings accounts.
func (s *Service) ProjectedInterest(ctx context.Context, accountID uuid.UUID) (money.Balance, error) {
	a, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return money.Zero(), err
	}
	return s.domain.CalculateInterest(a), nil
}
