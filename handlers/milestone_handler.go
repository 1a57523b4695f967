package handlers

import (
	"net/http"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/middleware"
	"github.com/LittleSteps/little-steps-backend/services"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	milestoneService *services.MilestoneService
}

func NewMilestoneHandler(milestoneService *services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: milestoneService}
}

// List godoc
// @Summary List age-appropriate milestones
// @Description Returns catalog milestones filtered to the baby's age, optionally by category.
// @Tags milestones
// @Produce json
// @Param category query string false "motor, cognitive, social or language"
// @Success 200 {array} types.Milestone
// @Router /milestones [get]
// @Security BearerAuth
func (h *MilestoneHandler) List(c *gin.Context) {
	category := types.MilestoneCategory(c.Query("category"))

	milestones, err := h.milestoneService.ListAgeAppropriate(c.Request.Context(), middleware.GetUserID(c), category)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

// ListUser returns the user's milestone completion records, joined with the
// catalog entries. ?completed_only=true narrows to completed ones.
func (h *MilestoneHandler) ListUser(c *gin.Context) {
	completedOnly := c.Query("completed_only") == "true"

	milestones, err := h.milestoneService.ListUserProgress(c.Request.Context(), middleware.GetUserID(c), completedOnly)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

// Complete godoc
// @Summary Mark a milestone completed or not completed
// @Tags milestones
// @Accept json
// @Produce json
// @Param id path string true "Milestone ID"
// @Param request body types.MilestoneCompletionUpdate true "Completion state"
// @Success 200 {object} types.UserMilestone
// @Failure 404 {object} types.ErrorResponse "Unknown milestone"
// @Router /milestones/{id}/complete [put]
// @Security BearerAuth
func (h *MilestoneHandler) Complete(c *gin.Context) {
	milestoneID := c.Param("id")
	if milestoneID == "" {
		_ = c.Error(apperrors.ValidationFailed("Milestone ID missing", "milestone id is required"))
		return
	}

	var req types.MilestoneCompletionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	record, err := h.milestoneService.SetCompletion(c.Request.Context(), middleware.GetUserID(c), milestoneID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// Progress returns totals and per-category completion counts.
func (h *MilestoneHandler) Progress(c *gin.Context) {
	progress, err := h.milestoneService.ProgressStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
