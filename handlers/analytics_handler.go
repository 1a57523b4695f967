package handlers

import (
	"net/http"
	"strconv"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/middleware"
	"github.com/LittleSteps/little-steps-backend/services"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// TrackEvent records a client-side engagement event.
func (h *AnalyticsHandler) TrackEvent(c *gin.Context) {
	var req types.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	event, err := h.analyticsService.Track(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// WeeklyProgress godoc
// @Summary Weekly milestone and event activity
// @Description Returns trailing 7-day windows of activity, most recent first. ?weeks= controls how many (default 4, max 12).
// @Tags analytics
// @Produce json
// @Param weeks query int false "Number of weekly windows"
// @Success 200 {object} types.WeeklyProgressReport
// @Router /analytics/progress [get]
// @Security BearerAuth
func (h *AnalyticsHandler) WeeklyProgress(c *gin.Context) {
	weeks := 0
	if raw := c.Query("weeks"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			_ = c.Error(apperrors.ValidationFailed("Invalid weeks", "weeks must be a positive integer"))
			return
		}
		weeks = parsed
	}

	report, err := h.analyticsService.WeeklyProgress(c.Request.Context(), middleware.GetUserID(c), weeks)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Insights returns aggregate engagement metrics for the user.
func (h *AnalyticsHandler) Insights(c *gin.Context) {
	report, err := h.analyticsService.Insights(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, report)
}
