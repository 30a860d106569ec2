package account

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/versebank/banking/pkg/money"
)

// ErrInitialBalanceTooLow is returned when an account is opened with less
// than the minimum initial balance its type requires.
var ErrInitialBalanceTooLow = errors.New("initial balance below the minimum for this account type")

var (
	// savingsMinimumBalance is the minimum initial balance for a savings account.
	savingsMinimumBalance = money.MustParse("100.00")

	// overdraftLimit caps how much overdraft an eligible account may request.
	overdraftLimit = money.MustParse("1000.00")

	// largeTransactionThreshold flags movements that warrant a compliance event.
	largeTransactionThreshold = money.MustParse("10000.00")

	// savingsInterestRate is the simplified annual interest rate for savings.
	savingsInterestRate = decimal.RequireFromString("0.02")
)

// DomainService is a stateless façade for account business rules that do not
// belong to a single aggregate. Fee computation delegates to AccountType,
// which owns the policy; this service is not a second source of truth.
type DomainService struct{}

// NewDomainService returns the stateless domain service.
func NewDomainService() *DomainService {
	return &DomainService{}
}

// CanCreateAccount reports whether an account of the given type may be
// opened with the given initial balance. Savings accounts require a minimum
// of 100.00; other types have no floor.
func (DomainService) CanCreateAccount(accountType AccountType, initial money.Balance) bool {
	if !accountType.Valid() {
		return false
	}
	if accountType == Savings {
		return initial.GreaterThanOrEqual(savingsMinimumBalance)
	}
	return true
}

// TransferFee computes the fee for transferring amount from an account of
// the given type. Delegates to AccountType.TransferFee.
func (DomainService) TransferFee(accountType AccountType, amount money.Balance) money.Balance {
	return accountType.TransferFee(amount)
}

// CanTransferMoney reports whether a transfer between the two accounts is
// valid: distinct accounts and sufficient source balance including the fee.
func (s DomainService) CanTransferMoney(source, target *Account, amount money.Balance) bool {
	if source == nil {
		return false
	}
	return source.CanTransferTo(target, amount)
}

// CalculateInterest returns the simplified annual interest for a savings
// account, and zero for every other type.
func (DomainService) CalculateInterest(a *Account) money.Balance {
	if a == nil || a.Type() != Savings {
		return money.Zero()
	}
	interest, _ := money.New(a.Balance().Decimal().Mul(savingsInterestRate))
	return interest
}

// CanApplyOverdraft reports whether the requested overdraft is permitted:
// only overdraft-enabled types, up to the fixed limit.
func (DomainService) CanApplyOverdraft(a *Account, requested money.Balance) bool {
	if a == nil || !a.Type().AllowsOverdraft() {
		return false
	}
	return overdraftLimit.GreaterThanOrEqual(requested)
}

// IsLargeTransaction reports whether a single movement of the given amount
// meets the large-transaction threshold.
func (DomainService) IsLargeTransaction(amount money.Balance) bool {
	return amount.GreaterThanOrEqual(largeTransactionThreshold)
}
