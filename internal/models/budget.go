package models

import "github.com/shopspring/decimal"

// Budget caps a single owner's expense spend for one calendar month.
// Month is a YYYY-MM string; (owner, month) pairs are unique.
type Budget struct {
	Base
	OwnerID uint            `gorm:"not null;uniqueIndex:idx_budgets_owner_month" json:"owner_id"`
	Month   string          `gorm:"size:7;not null;uniqueIndex:idx_budgets_owner_month" json:"month"`
	Limit   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"limit"`
}
