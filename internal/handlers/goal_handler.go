package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/moolahfactory/moolah/internal/errors"
	"github.com/moolahfactory/moolah/internal/services"
)

// GoalHandler handles savings-goal requests.
type GoalHandler struct {
	goalService   services.GoalServicer
	rewardService services.RewardServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, rewardService services.RewardServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, rewardService: rewardService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Description  string          `json:"description" binding:"required,max=500"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
}

// CreateGoal creates a new savings goal for the authenticated user.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(userID, req.Description, req.TargetAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetUserGoals lists the authenticated user's goals.
func (h *GoalHandler) GetUserGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// UpdateGoalRequest represents the request payload for updating a goal.
// Absent fields retain their prior values.
type UpdateGoalRequest struct {
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
}

// UpdateGoal applies a partial update to an existing goal.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, services.GoalUpdate{
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// CompleteGoal marks a goal achieved and returns the user's reward progress.
// Completing an already-achieved goal is a no-op that still reports progress.
func (h *GoalHandler) CompleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	_, user, err := h.goalService.CompleteGoal(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.rewardService.GetProgress(user.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// DeleteGoal removes a goal.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Goal deleted"})
}
