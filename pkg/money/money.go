// Package money provides the Balance value object: an immutable,
// non-negative monetary amount with exact decimal arithmetic.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when a monetary amount is negative or unparseable.
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// ErrInsufficientFunds is returned when a subtraction would produce a negative balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// displayScale is the number of fractional digits used for display.
// Arithmetic and comparisons always use full precision.
const displayScale = 2

// Balance is an immutable, non-negative monetary amount.
//
// Invariants:
//   - The amount is never negative; construction with a negative value fails.
//   - Every operation returns a new Balance, the receiver is never mutated.
//   - Equality and ordering are by exact numeric value, so 100 and 100.00
//     are equal regardless of their trailing-zero representation.
type Balance struct {
	amount decimal.Decimal
}

// New creates a Balance from a decimal amount.
// Returns ErrInvalidAmount if the amount is negative.
func New(amount decimal.Decimal) (Balance, error) {
	if amount.IsNegative() {
		return Balance{}, ErrInvalidAmount
	}
	return Balance{amount: amount}, nil
}

// Parse creates a Balance from its decimal string representation.
// Returns ErrInvalidAmount if the string is unparseable or negative.
func Parse(s string) (Balance, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Balance{}, ErrInvalidAmount
	}
	return New(d)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Balance {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Zero returns a Balance of zero.
func Zero() Balance {
	return Balance{amount: decimal.Zero}
}

// Add returns the sum of two balances. The sum of two non-negative
// amounts is non-negative, so Add never fails.
func (b Balance) Add(other Balance) Balance {
	return Balance{amount: b.amount.Add(other.amount)}
}

// Subtract returns the difference of two balances.
// Returns ErrInsufficientFunds when the receiver is less than other;
// the result is exact and never negative by construction.
func (b Balance) Subtract(other Balance) (Balance, error) {
	if b.amount.LessThan(other.amount) {
		return Balance{}, ErrInsufficientFunds
	}
	return Balance{amount: b.amount.Sub(other.amount)}, nil
}

// Cmp compares two balances by exact numeric value.
// It returns -1, 0 or 1 when b is less than, equal to, or greater than other.
func (b Balance) Cmp(other Balance) int {
	return b.amount.Cmp(other.amount)
}

// Equal reports whether two balances represent the same numeric value.
func (b Balance) Equal(other Balance) bool {
	return b.amount.Equal(other.amount)
}

// GreaterThanOrEqual reports whether b >= other.
func (b Balance) GreaterThanOrEqual(other Balance) bool {
	return b.amount.GreaterThanOrEqual(other.amount)
}

// LessThan reports whether b < other.
func (b Balance) LessThan(other Balance) bool {
	return b.amount.LessThan(other.amount)
}

// IsZero reports whether the balance is exactly zero.
func (b Balance) IsZero() bool {
	return b.amount.IsZero()
}

// IsPositive reports whether the balance is strictly greater than zero.
func (b Balance) IsPositive() bool {
	return b.amount.IsPositive()
}

// Decimal returns the underlying amount at full precision.
func (b Balance) Decimal() decimal.Decimal {
	return b.amount
}

// String renders the balance with a fixed two-digit fractional part.
func (b Balance) String() string {
	return b.amount.StringFixed(displayScale)
}

// MarshalJSON renders the balance as a JSON string, two fractional digits.
func (b Balance) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

// UnmarshalJSON accepts a JSON string or number holding a non-negative
// decimal amount.
func (b *Balance) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return ErrInvalidAmount
	}
	parsed, err := New(d)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
