package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/moolahfactory/moolah/internal/errors"
	"github.com/moolahfactory/moolah/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// validateMonth checks the YYYY-MM month key format.
func validateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be in YYYY-MM format")
	}
	return nil
}

// CreateBudget creates a monthly spend limit. One budget per (owner, month).
func (s *budgetService) CreateBudget(ownerID uint, month string, limit decimal.Decimal) (*models.Budget, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	if !limit.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
	}

	var count int64
	if err := s.db.Model(&models.Budget{}).
		Where("owner_id = ? AND month = ?", ownerID, month).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		OwnerID: ownerID,
		Month:   month,
		Limit:   limit,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetUserBudgets retrieves all budgets belonging to the owner.
func (s *budgetService) GetUserBudgets(ownerID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("owner_id = ?", ownerID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// getBudget loads an owner-scoped budget. Cross-owner access reads as not found.
func (s *budgetService) getBudget(ownerID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND owner_id = ?", budgetID, ownerID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget applies a partial update, keeping (owner, month) unique.
func (s *budgetService) UpdateBudget(ownerID, budgetID uint, update BudgetUpdate) (*models.Budget, error) {
	budget, err := s.getBudget(ownerID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Month != nil {
		if err := validateMonth(*update.Month); err != nil {
			return nil, err
		}

		var count int64
		if err := s.db.Model(&models.Budget{}).
			Where("owner_id = ? AND month = ? AND id <> ?", ownerID, *update.Month, budgetID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateBudget
		}
		updates["month"] = *update.Month
	}
	if update.Limit != nil {
		if !update.Limit.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
		}
		updates["limit"] = *update.Limit
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return budget, nil
}

// DeleteBudget removes a budget.
func (s *budgetService) DeleteBudget(ownerID, budgetID uint) error {
	budget, err := s.getBudget(ownerID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
