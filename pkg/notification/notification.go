// Package notification defines the outbound port for account operation
// notifications. Delivery is best-effort: a notification failure never rolls
// back an already-committed account mutation.
package notification

import (
	"context"

	"github.com/google/uuid"
)

// Operation names the account operation a notification refers to.
type Operation string

const (
	OpDeposit     Operation = "DEPOSIT"
	OpWithdrawal  Operation = "WITHDRAWAL"
	OpTransferOut Operation = "TRANSFER_OUT"
	OpTransferIn  Operation = "TRANSFER_IN"
)

// Notifier delivers account operation notifications.
type Notifier interface {
	Notify(ctx context.Context, accountID uuid.UUID, operation Operation, details string) error
}
