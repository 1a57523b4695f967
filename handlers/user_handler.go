package handlers

import (
	"net/http"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/middleware"
	"github.com/LittleSteps/little-steps-backend/services"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the account record (name, email).
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update to name and email.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req types.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetProfileDetails returns the baby profile (birth date, stage, preferences).
func (h *UserHandler) GetProfileDetails(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfileDetails applies a partial update to the baby profile.
func (h *UserHandler) UpdateProfileDetails(c *gin.Context) {
	var req types.ProfileDetailsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	profile, err := h.userService.UpdateProfileDetails(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Onboarding performs the one-shot profile setup after registration.
func (h *UserHandler) Onboarding(c *gin.Context) {
	var req types.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	profile, err := h.userService.Onboard(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
