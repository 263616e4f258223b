package models

// Category represents a transaction category. Names are globally unique
// across all users; only admins may create or modify categories.
type Category struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
