package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moolahfactory/moolah/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string, isAdmin bool) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uint
}

// TransactionUpdate holds the fields of a partial transaction update.
// Nil fields are absent and retain their prior values.
type TransactionUpdate struct {
	Amount     *decimal.Decimal
	CategoryID *uint
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ownerID uint, amount decimal.Decimal, categoryID *uint, timestamp time.Time) (*models.Transaction, error)
	GetUserTransactions(ownerID uint, filter TransactionFilter) ([]models.Transaction, error)
	GetTransactionByID(ownerID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(ownerID, transactionID uint, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(ownerID, transactionID uint) error
}

// GoalUpdate holds the fields of a partial goal update. Achieved is not
// updatable here; goals are completed through CompleteGoal only.
type GoalUpdate struct {
	Description  *string
	TargetAmount *decimal.Decimal
}

// GoalServicer defines the contract for savings-goal business logic.
type GoalServicer interface {
	CreateGoal(ownerID uint, description string, targetAmount decimal.Decimal) (*models.Goal, error)
	GetUserGoals(ownerID uint) ([]models.Goal, error)
	UpdateGoal(ownerID, goalID uint, update GoalUpdate) (*models.Goal, error)
	CompleteGoal(ownerID, goalID uint) (*models.Goal, *models.User, error)
	DeleteGoal(ownerID, goalID uint) error
}

// CategoryServicer defines the contract for category business logic.
// Categories are global; mutation is admin-gated at the routing layer.
type CategoryServicer interface {
	CreateCategory(name string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	UpdateCategory(categoryID uint, name *string) (*models.Category, error)
	DeleteCategory(categoryID uint) error
}

// BudgetUpdate holds the fields of a partial budget update.
type BudgetUpdate struct {
	Month *string
	Limit *decimal.Decimal
}

// BudgetServicer defines the contract for budget business logic.
type BudgetServicer interface {
	CreateBudget(ownerID uint, month string, limit decimal.Decimal) (*models.Budget, error)
	GetUserBudgets(ownerID uint) ([]models.Budget, error)
	UpdateBudget(ownerID, budgetID uint, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(ownerID, budgetID uint) error
}

// RewardProgress reports a user's point balance and unlocked reward tiers.
type RewardProgress struct {
	Points  int64           `json:"points"`
	Rewards []models.Reward `json:"rewards"`
}

// RewardServicer defines the contract for reward-progress queries.
type RewardServicer interface {
	GetProgress(ownerID uint) (*RewardProgress, error)
}

// MonthlySummary is the total transaction amount for one YYYY-MM bucket.
type MonthlySummary struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// CategorySummary is the total transaction amount for one category.
// Transactions with no category group under "Uncategorized".
type CategorySummary struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// SummaryServicer defines the contract for summary aggregation queries.
type SummaryServicer interface {
	MonthlySummary(ownerID uint) ([]MonthlySummary, error)
	CategorySummary(ownerID uint) ([]CategorySummary, error)
}

// InboundMessage is one message extracted from a WhatsApp webhook delivery.
type InboundMessage struct {
	WaID       string
	FromNumber string
	Body       string
	Timestamp  time.Time
}

// WhatsAppServicer defines the contract for webhook message ingestion.
type WhatsAppServicer interface {
	// IngestMessage stores an inbound message. Duplicate message ids are
	// silently ignored; the return value reports whether a row was stored.
	IngestMessage(msg InboundMessage) (bool, error)
	GetMessages() ([]models.WhatsAppMessage, error)
}
