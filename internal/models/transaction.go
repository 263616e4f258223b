package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single income or expense entry. Positive amounts
// are income, negative amounts are expenses. Amounts carry fixed 2-decimal
// precision.
type Transaction struct {
	Base
	OwnerID    uint            `gorm:"not null;index" json:"owner_id"`
	CategoryID *uint           `json:"category_id,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Timestamp  time.Time       `gorm:"not null;index" json:"timestamp"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// MonthKey returns the YYYY-MM bucket the transaction belongs to, derived
// from its timestamp.
func (t *Transaction) MonthKey() string {
	return t.Timestamp.Format("2006-01")
}
