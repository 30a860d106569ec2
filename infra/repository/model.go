package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the database record for an account aggregate.
type Account struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID  string          `gorm:"type:varchar(64);not null;index"`
	AccountType string          `gorm:"type:varchar(16);not null"`
	Balance     decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Transactions []Transaction `gorm:"foreignKey:AccountID"`
}

// TableName overrides gorm's pluralization.
func (Account) TableName() string { return "accounts" }

// Transaction is the database record for one entry of an account's
// transaction log. Rows are append-only: Position preserves application
// order and is never rewritten.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	Kind        string          `gorm:"type:varchar(16);not null"`
	Timestamp   time.Time       `gorm:"not null"`
}

// TableName overrides gorm's pluralization.
func (Transaction) TableName() string { return "transactions" }
