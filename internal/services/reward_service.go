package services

import (
	"gorm.io/gorm"

	apperrors "github.com/moolahfactory/moolah/internal/errors"
	"github.com/moolahfactory/moolah/internal/models"
)

// rewardService handles read-only reward-progress queries. Reward rows are
// only ever created by the ledger check; this service never mutates them.
type rewardService struct {
	db *gorm.DB
}

// NewRewardService creates a new RewardServicer.
func NewRewardService(db *gorm.DB) RewardServicer {
	return &rewardService{db: db}
}

// GetProgress returns the owner's point balance and unlocked reward tiers.
func (s *rewardService) GetProgress(ownerID uint) (*RewardProgress, error) {
	var user models.User
	if err := s.db.First(&user, ownerID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rewards []models.Reward
	if err := s.db.Where("owner_id = ?", ownerID).Find(&rewards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if rewards == nil {
		rewards = []models.Reward{}
	}

	return &RewardProgress{Points: user.Points, Rewards: rewards}, nil
}
