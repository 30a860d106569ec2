package account

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/versebank/banking/pkg/money"
)

// ErrInvalidAccountType is returned when an account type string does not
// name a known variant.
var ErrInvalidAccountType = errors.New("invalid account type")

// AccountType is the closed set of account categories. Each variant
// parameterizes the overdraft and transfer-fee policy.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
	Business AccountType = "BUSINESS"
)

// Business accounts pay 1% of the transferred amount, capped at 10.00.
var (
	businessFeeRate = decimal.RequireFromString("0.01")
	businessFeeCap  = decimal.RequireFromString("10.00")
)

// ParseAccountType parses a case-insensitive account type name.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(strings.ToUpper(strings.TrimSpace(s))) {
	case Checking:
		return Checking, nil
	case Savings:
		return Savings, nil
	case Business:
		return Business, nil
	}
	return "", ErrInvalidAccountType
}

// Valid reports whether the type is one of the known variants.
func (t AccountType) Valid() bool {
	switch t {
	case Checking, Savings, Business:
		return true
	}
	return false
}

// AllowsOverdraft reports whether the type permits overdraft.
// Pure function of the variant; no account with a negative balance can be
// constructed regardless of this flag.
func (t AccountType) AllowsOverdraft() bool {
	return t == Checking || t == Business
}

// TransferFee computes the fee charged for transferring the given amount.
// This is the single source of truth for the fee rule: Business pays
// min(amount * 0.01, 10.00), every other type pays zero. The fee base is
// always the transfer amount, never the account balance.
func (t AccountType) TransferFee(amount money.Balance) money.Balance {
	if t != Business {
		return money.Zero()
	}
	fee := amount.Decimal().Mul(businessFeeRate)
	if fee.GreaterThan(businessFeeCap) {
		fee = businessFeeCap
	}
	// Non-negative by construction: amount is non-negative and so is the rate.
	b, _ := money.New(fee)
	return b
}

func (t AccountType) String() string { return string(t) }
