package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moolahfactory/moolah/internal/services"
)

// RewardHandler handles read-only reward-progress requests.
type RewardHandler struct {
	rewardService services.RewardServicer
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(rewardService services.RewardServicer) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

// GetProgress returns the authenticated user's point balance and unlocked
// reward tiers.
func (h *RewardHandler) GetProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.rewardService.GetProgress(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
