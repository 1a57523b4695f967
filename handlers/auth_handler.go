package handlers

import (
	"net/http"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/LittleSteps/little-steps-backend/middleware"
	"github.com/LittleSteps/little-steps-backend/services"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user with an empty baby profile and returns the user plus a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body types.RegisterRequest true "Registration details"
// @Success 201 {object} types.AuthResponse
// @Failure 400 {object} types.ErrorResponse "Invalid input or email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body types.LoginRequest true "Credentials"
// @Success 200 {object} types.AuthResponse
// @Failure 401 {object} types.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body types.RefreshRequest true "Refresh token"
// @Success 200 {object} types.TokenPair
// @Failure 401 {object} types.ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req types.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout acknowledges the logout. Tokens are stateless, so the client
// discards them; there is no server-side session to destroy.
func (h *AuthHandler) Logout(c *gin.Context) {
	logger.GetLogger().Debugw("User logged out", "userId", middleware.GetUserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated user's account record.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}
