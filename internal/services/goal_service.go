package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/moolahfactory/moolah/internal/errors"
	"github.com/moolahfactory/moolah/internal/models"
)

// goalService handles savings-goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new savings goal for the owner.
func (s *goalService) CreateGoal(ownerID uint, description string, targetAmount decimal.Decimal) (*models.Goal, error) {
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal description is required")
	}
	if !targetAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	goal := &models.Goal{
		OwnerID:      ownerID,
		Description:  description,
		TargetAmount: targetAmount,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals retrieves all goals belonging to the owner.
func (s *goalService) GetUserGoals(ownerID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("owner_id = ?", ownerID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// getGoal loads an owner-scoped goal. Cross-owner access reads as not found.
func (s *goalService) getGoal(tx *gorm.DB, ownerID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := tx.Where("id = ? AND owner_id = ?", goalID, ownerID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies a partial update to a goal's description or target.
func (s *goalService) UpdateGoal(ownerID, goalID uint, update GoalUpdate) (*models.Goal, error) {
	goal, err := s.getGoal(s.db, ownerID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.TargetAmount != nil {
		if !update.TargetAmount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		updates["target_amount"] = *update.TargetAmount
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return goal, nil
}

// CompleteGoal marks a goal achieved and accrues points worth the truncated
// target amount. Completion is idempotent: only the first call changes state
// or points, but the reward-tier check runs every time.
func (s *goalService) CompleteGoal(ownerID, goalID uint) (*models.Goal, *models.User, error) {
	var goal *models.Goal
	var user *models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		goal, err = s.getGoal(tx, ownerID, goalID)
		if err != nil {
			return err
		}

		user, err = lockOwner(tx, ownerID)
		if err != nil {
			return err
		}

		if !goal.Achieved {
			goal.Achieved = true
			if err := tx.Model(goal).Update("achieved", true).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := recordPoints(tx, user, goal.TargetAmount.IntPart(), models.PointEventSourceGoal, goal.ID); err != nil {
				return err
			}
		}
		return checkRewards(tx, user)
	})
	if err != nil {
		return nil, nil, err
	}
	return goal, user, nil
}

// DeleteGoal removes a goal. Points from a completed goal are kept.
func (s *goalService) DeleteGoal(ownerID, goalID uint) error {
	goal, err := s.getGoal(s.db, ownerID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
