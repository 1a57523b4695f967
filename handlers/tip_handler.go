package handlers

import (
	"net/http"

	"github.com/LittleSteps/little-steps-backend/middleware"
	"github.com/LittleSteps/little-steps-backend/services"
	"github.com/gin-gonic/gin"
)

type TipHandler struct {
	tipService *services.TipService
}

func NewTipHandler(tipService *services.TipService) *TipHandler {
	return &TipHandler{tipService: tipService}
}

// Daily returns the tip of the day for the user's age bucket. The same
// user sees the same tip all day.
func (h *TipHandler) Daily(c *gin.Context) {
	tip, err := h.tipService.DailyTip(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, tip)
}
