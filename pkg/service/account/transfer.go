package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/versebank/banking/pkg/domain/account"
	"github.com/versebank/banking/pkg/money"
	"github.com/versebank/banking/pkg/notification"
	"github.com/versebank/banking/pkg/repository"
)

// Transfer moves amount from the source account to the target account as
// one logical operation.
//
// The source is debited the amount plus its type's transfer fee (as a
// separate fee transaction when non-zero); the target is credited the full
// amount. Any failure before persistence leaves both accounts unchanged: a
// failed source withdrawal never deposits into the target.
//
// Both saves run inside a single unit-of-work boundary. The orchestrator
// still issues two independent Save calls and implements no compensation:
// with a store that cannot provide that boundary, a second-save failure
// leaves a partial write to be reconciled out-of-band.
func (s *Service) Transfer(
	ctx context.Context,
	sourceID, targetID uuid.UUID,
	amount decimal.Decimal,
	description string,
) (err error) {
	logger := s.logger.With(
		"sourceID", sourceID,
		"targetID", targetID,
		"amount", amount,
	)
	logger.Info("Transfer started")
	defer func() {
		if err != nil {
			logger.Error("Transfer failed", "error", err)
		} else {
			logger.Info("Transfer successful")
		}
	}()

	amt, err := money.New(amount)
	if err != nil || !amt.IsPositive() {
		return money.ErrInvalidAmount
	}

	var (
		events []account.Event
		fee    money.Balance
	)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}

		source, err := s.load(ctx, repo, sourceID)
		if err != nil {
			return fmt.Errorf("source %w", err)
		}
		target, err := s.load(ctx, repo, targetID)
		if err != nil {
			return fmt.Errorf("target %w", err)
		}

		if source.ID() == target.ID() {
			return fmt.Errorf("%w: cannot transfer to the same account", account.ErrTransferNotAllowed)
		}

		// Fee is computed from the transfer amount by the source
		// account's type. The receiver always gets the full amount.
		fee = source.TransferFee(amt)

		tx, err := account.NewTransaction(amt, description, account.KindTransfer)
		if err != nil {
			return err
		}
		ev, err := source.Withdraw(tx)
		if err != nil {
			return err
		}
		events = append(events, ev)

		if fee.IsPositive() {
			feeTx, err := account.NewTransaction(fee, "Transfer fee", account.KindFee)
			if err != nil {
				return err
			}
			feeEv, err := source.Withdraw(feeTx)
			if err != nil {
				return err
			}
			events = append(events, feeEv)
		}

		targetTx, err := account.NewTransaction(amt, description, account.KindTransfer)
		if err != nil {
			return err
		}
		recvEv, err := target.ReceiveTransfer(targetTx)
		if err != nil {
			return err
		}
		events = append(events, recvEv)

		if err := repo.Save(ctx, source); err != nil {
			return err
		}
		return repo.Save(ctx, target)
	})
	if err != nil {
		events = nil
		return err
	}

	if s.domain.IsLargeTransaction(amt) {
		events = append(events, account.NewLargeTransactionDetected(sourceID, amt, account.KindTransfer))
	}
	s.publish(ctx, events...)

	sourceDetails := fmt.Sprintf("Transfer of %s to account %s", amt, targetID)
	if fee.IsPositive() {
		sourceDetails += fmt.Sprintf(" (fee: %s)", fee)
	}
	s.notify(ctx, sourceID, notification.OpTransferOut, sourceDetails)
	s.notify(ctx, targetID, notification.OpTransferIn,
		fmt.Sprintf("Transfer of %s from account %s", amt, sourceID))
	return nil
}
