// Package account provides the application use cases for the account
// ledger: opening accounts, depositing and withdrawing funds, transferring
// money between two accounts, and read-side queries.
//
// Every mutating use case follows the same shape: load the aggregates
// inside a unit-of-work boundary, apply the domain operations, persist,
// then publish the collected domain events and send notifications. Events
// and notifications only go out after a successful commit.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/versebank/banking/config"
	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/eventbus"
	"github.com/versebank/banking/pkg/money"
	"github.com/versebank/banking/pkg/notification"
	"github.com/versebank/banking/pkg/repository"
)

// Service implements the account use cases.
type Service struct {
	uow      repository.UnitOfWork
	notifier notification.Notifier
	bus      eventbus.Bus
	domain   *account.DomainService
	logger   *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	return &Service{
		uow:      deps.Uow,
		notifier: deps.Notifier,
		bus:      deps.EventBus,
		domain:   account.NewDomainService(),
		logger:   deps.Logger,
	}
}

// OpenAccount creates and persists a new account for the customer.
// Savings accounts require the minimum initial balance enforced by the
// domain service; the AccountOpened event is published after the commit.
func (s *Service) OpenAccount(
	ctx context.Context,
	customerID string,
	accountType account.AccountType,
	initialBalance decimal.Decimal,
) (a *account.Account, err error) {
	logger := s.logger.With("customerID", customerID, "accountType", accountType)
	logger.Info("OpenAccount started")
	defer func() {
		if err != nil {
			logger.Error("OpenAccount failed", "error", err)
		} else {
			logger.Info("OpenAccount successful", "accountID", a.ID())
		}
	}()

	initial, err := money.New(initialBalance)
	if err != nil {
		return nil, err
	}
	if !s.domain.CanCreateAccount(accountType, initial) {
		if !accountType.Valid() {
			return nil, account.ErrInvalidAccountType
		}
		return nil, account.ErrInitialBalanceTooLow
	}

	var opened account.Event
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		var buildErr error
		a, opened, buildErr = account.Open(customerID, accountType, initial)
		if buildErr != nil {
			return buildErr
		}
		return repo.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, opened)
	return a, nil
}

// CloseAccount deletes an account. Deletion lives outside the aggregate's
// mutation protocol: no transaction is recorded and no event is emitted.
func (s *Service) CloseAccount(ctx context.Context, accountID uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		exists, err := repo.Exists(ctx, accountID)
		if err != nil {
			return err
		}
		if !exists {
			return account.ErrAccountNotFound
		}
		return repo.Delete(ctx, accountID)
	})
}

// publish hands events to the bus. Publishing happens after persistence;
// a publish failure is logged, never propagated.
func (s *Service) publish(ctx context.Context, events ...account.Event) {
	for _, ev := range events {
		if ev == nil {
			continue
		}
		if err := s.bus.Publish(ctx, ev); err != nil {
			s.logger.Error("event publish failed", "event_type", ev.EventType(), "error", err)
		}
	}
}

// notify sends a best-effort notification. Failures are logged and
// swallowed: the account mutation is already committed.
func (s *Service) notify(ctx context.Context, accountID uuid.UUID, op notification.Operation, details string) {
	if err := s.notifier.Notify(ctx, accountID, op, details); err != nil {
		s.logger.Warn("notification delivery failed",
			"accountID", accountID, "operation", op, "error", err)
	}
}
