package models

import "time"

// Reward records an unlocked reward tier. Rows are immutable once created;
// at most one reward exists per (owner, level), enforced by the ledger check
// rather than a database constraint. Points is a snapshot of the owner's
// balance at the time of the award.
type Reward struct {
	Base
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Level     string    `gorm:"not null" json:"level"`
	Points    int64     `gorm:"not null" json:"points"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
