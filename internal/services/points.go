package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/moolahfactory/moolah/internal/errors"
	"github.com/moolahfactory/moolah/internal/models"
)

// rewardTier pairs a reward level with the cumulative point total that
// unlocks it.
type rewardTier struct {
	Level     string
	Threshold int64
}

// rewardTiers lists the reward levels in ascending threshold order.
// Thresholds are evaluated independently: a single jump past several
// thresholds unlocks every tier not yet owned.
var rewardTiers = []rewardTier{
	{Level: "Bronze", Threshold: 100},
	{Level: "Silver", Threshold: 500},
	{Level: "Gold", Threshold: 1000},
}

// pointsFor returns the point value of a transaction amount: the absolute
// value truncated to a whole number.
func pointsFor(amount decimal.Decimal) int64 {
	return amount.Abs().IntPart()
}

// recordPoints applies delta to the user's cached balance and appends the
// matching ledger event. Both writes happen on tx so the balance and the
// event log cannot diverge.
func recordPoints(tx *gorm.DB, user *models.User, delta int64, source models.PointEventSource, sourceID uint) error {
	user.Points += delta
	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("points", user.Points).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	event := &models.PointEvent{
		OwnerID:  user.ID,
		Delta:    delta,
		Source:   source,
		SourceID: sourceID,
	}
	if err := tx.Create(event).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// checkRewards creates a reward row for every tier whose threshold the
// user's balance meets and that the user does not own yet. Each reward
// snapshots the balance at award time.
func checkRewards(tx *gorm.DB, user *models.User) error {
	var existing []models.Reward
	if err := tx.Where("owner_id = ?", user.ID).Find(&existing).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	owned := make(map[string]bool, len(existing))
	for _, r := range existing {
		owned[r.Level] = true
	}

	for _, tier := range rewardTiers {
		if user.Points >= tier.Threshold && !owned[tier.Level] {
			reward := &models.Reward{
				OwnerID:   user.ID,
				Level:     tier.Level,
				Points:    user.Points,
				Timestamp: time.Now().UTC(),
			}
			if err := tx.Create(reward).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
	}
	return nil
}

// ledgerBalance recomputes a user's point balance from the event log. The
// cached users.points column must always reconcile with this sum.
func ledgerBalance(db *gorm.DB, ownerID uint) (int64, error) {
	var row struct{ Total int64 }
	err := db.Model(&models.PointEvent{}).
		Select("COALESCE(SUM(delta), 0) AS total").
		Where("owner_id = ?", ownerID).
		Scan(&row).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row.Total, nil
}
