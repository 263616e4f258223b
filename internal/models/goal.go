package models

import "github.com/shopspring/decimal"

// Goal represents a savings goal. Achieved is monotonic: once a goal is
// completed it never reverts.
type Goal struct {
	Base
	OwnerID      uint            `gorm:"not null;index" json:"owner_id"`
	Description  string          `gorm:"not null" json:"description"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"target_amount"`
	Achieved     bool            `gorm:"default:false" json:"achieved"`
}
