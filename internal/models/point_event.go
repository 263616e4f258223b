package models

// PointEventSource identifies what kind of mutation produced a point event.
type PointEventSource string

const (
	PointEventSourceTransaction PointEventSource = "transaction"
	PointEventSourceGoal        PointEventSource = "goal"
)

// PointEvent is one entry in the reward-point ledger. Every mutation of a
// user's cached point balance writes a matching event in the same database
// transaction, so the balance can always be reconciled from the event log.
// Transaction deletion intentionally writes no event: deletes do not refund
// points, and the ledger makes that asymmetry auditable.
type PointEvent struct {
	Base
	OwnerID  uint             `gorm:"not null;index" json:"owner_id"`
	Delta    int64            `gorm:"not null" json:"delta"`
	Source   PointEventSource `gorm:"not null" json:"source"`
	SourceID uint             `gorm:"not null" json:"source_id"`
}
