package models

// User represents the user model in the database
type User struct {
	Base
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
	IsAdmin  bool   `gorm:"default:false" json:"is_admin"`

	// Points is the cached reward-point balance. It is only ever mutated in
	// the same database transaction as the PointEvent recording the delta.
	Points int64 `gorm:"default:0" json:"points"`

	Transactions []Transaction `gorm:"foreignKey:OwnerID" json:"transactions,omitempty"`
	Goals        []Goal        `gorm:"foreignKey:OwnerID" json:"goals,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:OwnerID" json:"budgets,omitempty"`
	Rewards      []Reward      `gorm:"foreignKey:OwnerID" json:"rewards,omitempty"`
}
