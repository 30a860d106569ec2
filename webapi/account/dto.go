package account

import (
	"time"

	"github.com/versebank/banking/pkg/domain/account"
	accountsvc "github.com/versebank/banking/pkg/service/account"
)

//revive:disable

// OpenAccountRequest is the request body for opening a new account.
// Amounts travel as decimal strings so values like "100.10" survive the
// round trip exactly.
type OpenAccountRequest struct {
	CustomerID     string `json:"customer_id" validate:"required,min=1,max=64"`
	AccountType    string `json:"account_type" validate:"required"`
	InitialBalance string `json:"initial_balance" validate:"omitempty"`
}

// DepositRequest is the request body for depositing funds into an account.
type DepositRequest struct {
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description" validate:"required,max=255"`
}

// WithdrawRequest is the request body for withdrawing funds from an account.
type WithdrawRequest struct {
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description" validate:"required,max=255"`
}

// TransferRequest is the request body for transferring funds between accounts.
type TransferRequest struct {
	TargetAccountID string `json:"target_account_id" validate:"required,uuid4"`
	Amount          string `json:"amount" validate:"required"`
	Description     string `json:"description" validate:"required,max=255"`
}

// AccountDTO is the API representation of an account.
type AccountDTO struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	AccountType string `json:"account_type"`
	Balance     string `json:"balance"`
	CreatedAt   string `json:"created_at"`
}

// TransactionDTO is the API representation of a transaction log entry.
type TransactionDTO struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Timestamp   string `json:"timestamp"`
}

// BalanceDTO is the API representation of a balance query.
type BalanceDTO struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

// SufficientBalanceDTO is the API representation of a sufficiency check.
type SufficientBalanceDTO struct {
	AccountID  string `json:"account_id"`
	Amount     string `json:"amount"`
	Sufficient bool   `json:"sufficient"`
}

// AccountSummaryDTO is the API representation of a customer listing entry.
type AccountSummaryDTO struct {
	AccountID   string `json:"account_id"`
	CustomerID  string `json:"customer_id"`
	AccountType string `json:"account_type"`
	Balance     string `json:"balance"`
}

// ToAccountDTO maps a domain account to its API representation.
func ToAccountDTO(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:          a.ID().String(),
		CustomerID:  a.CustomerID(),
		AccountType: a.Type().String(),
		Balance:     a.Balance().String(),
		CreatedAt:   a.CreatedAt().UTC().Format(time.RFC3339),
	}
}

// ToTransactionDTO maps a domain transaction to its API representation.
func ToTransactionDTO(tx account.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          tx.ID().String(),
		Amount:      tx.Amount().String(),
		Description: tx.Description(),
		Kind:        string(tx.Kind()),
		Timestamp:   tx.Timestamp().UTC().Format(time.RFC3339),
	}
}

// ToAccountSummaryDTO maps a service summary to its API representation.
func ToAccountSummaryDTO(s accountsvc.AccountSummary) AccountSummaryDTO {
	return AccountSummaryDTO{
		AccountID:   s.AccountID.String(),
		CustomerID:  s.CustomerID,
		AccountType: s.AccountType.String(),
		Balance:     s.Balance.String(),
	}
}
