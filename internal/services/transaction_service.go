package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/moolahfactory/moolah/internal/errors"
	"github.com/moolahfactory/moolah/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a new income or expense entry. Budget
// enforcement, point accrual, and the reward-tier check run in a single
// database transaction: a budget rejection leaves no partial state.
func (s *transactionService) CreateTransaction(
	ownerID uint,
	amount decimal.Decimal,
	categoryID *uint,
	timestamp time.Time,
) (*models.Transaction, error) {
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	transaction := &models.Transaction{
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Amount:     amount,
		Timestamp:  timestamp,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockOwner(tx, ownerID)
		if err != nil {
			return err
		}

		if err := checkBudget(tx, transaction); err != nil {
			return err
		}

		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := recordPoints(tx, user, pointsFor(amount), models.PointEventSourceTransaction, transaction.ID); err != nil {
			return err
		}
		return checkRewards(tx, user)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetUserTransactions retrieves the owner's transactions with optional
// date-range and category filters, newest first.
func (s *transactionService) GetUserTransactions(ownerID uint, filter TransactionFilter) ([]models.Transaction, error) {
	q := s.db.Where("owner_id = ?", ownerID)
	if filter.StartDate != nil {
		q = q.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("timestamp <= ?", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}

	var transactions []models.Transaction
	if err := q.Order("timestamp DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific owner.
// Cross-owner access reads as not found.
func (s *transactionService) GetTransactionByID(ownerID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND owner_id = ?", transactionID, ownerID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update. The month key for budget
// enforcement is recomputed from the post-update transaction state, and the
// row being edited is excluded from the existing-spend sum so its old amount
// is not double-counted. On an amount change the old point value is reversed
// and the new one accrued, each as its own ledger event.
func (s *transactionService) UpdateTransaction(
	ownerID, transactionID uint,
	update TransactionUpdate,
) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", transactionID, ownerID).First(&transaction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		user, err := lockOwner(tx, ownerID)
		if err != nil {
			return err
		}

		oldAmount := transaction.Amount
		if update.Amount != nil {
			transaction.Amount = *update.Amount
		}
		if update.CategoryID != nil {
			transaction.CategoryID = update.CategoryID
		}

		if err := checkBudget(tx, &transaction); err != nil {
			return err
		}

		if err := tx.Save(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if update.Amount != nil {
			if err := recordPoints(tx, user, -pointsFor(oldAmount), models.PointEventSourceTransaction, transaction.ID); err != nil {
				return err
			}
			if err := recordPoints(tx, user, pointsFor(transaction.Amount), models.PointEventSourceTransaction, transaction.ID); err != nil {
				return err
			}
		}
		return checkRewards(tx, user)
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DeleteTransaction removes a transaction. Points earned from it are not
// refunded; the ledger keeps its accrual events and records no reversal.
func (s *transactionService) DeleteTransaction(ownerID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(ownerID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// lockOwner loads the owning user inside tx. The read and the later points
// write share the request's database transaction, which is the only
// isolation this system relies on.
func lockOwner(tx *gorm.DB, ownerID uint) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// checkBudget enforces the owner's monthly budget for an expense candidate.
// Income is never checked, and a month with no budget row allows everything.
// The comparison is strict: spending exactly up to the limit is allowed.
func checkBudget(tx *gorm.DB, candidate *models.Transaction) error {
	if !candidate.IsExpense() {
		return nil
	}

	var budget models.Budget
	err := tx.Where("owner_id = ? AND month = ?", candidate.OwnerID, candidate.MonthKey()).First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	start, end := monthBounds(candidate.Timestamp)
	q := tx.Model(&models.Transaction{}).
		Where("owner_id = ? AND amount < 0 AND timestamp >= ? AND timestamp < ?", candidate.OwnerID, start, end)
	if candidate.ID != 0 {
		q = q.Where("id <> ?", candidate.ID)
	}

	var row struct{ Spent decimal.Decimal }
	if err := q.Select("COALESCE(SUM(amount), 0) AS spent").Scan(&row).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := row.Spent.Abs().Add(candidate.Amount.Abs())
	if total.GreaterThan(budget.Limit) {
		return apperrors.ErrBudgetExceeded
	}
	return nil
}

// monthBounds returns the [start, end) window of the calendar month
// containing ts.
func monthBounds(ts time.Time) (time.Time, time.Time) {
	start := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
	return start, start.AddDate(0, 1, 0)
}
