package middleware

import (
	"errors"
	"strings"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer token and stores the authenticated
// user's ID in the request context.
func AuthMiddleware(validator Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(apperrors.Unauthorized("missing_token", "Authorization header is required"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			_ = c.Error(apperrors.Unauthorized("invalid_auth_header", "Authorization header must be 'Bearer <token>'"))
			c.Abort()
			return
		}

		userID, err := validator.Validate(parts[1])
		if err != nil {
			log.Debugw("Token validation failed",
				"path", c.Request.URL.Path,
				"error", err)

			switch {
			case errors.Is(err, ErrTokenExpired):
				_ = c.Error(apperrors.Unauthorized("token_expired", "Your session has expired"))
			case errors.Is(err, ErrTokenWrongKind):
				_ = c.Error(apperrors.Unauthorized("wrong_token_kind", "An access token is required"))
			default:
				_ = c.Error(apperrors.Unauthorized("invalid_token", "Invalid authentication token"))
			}
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the gin context, or an
// empty string when the request is not authenticated.
func GetUserID(c *gin.Context) string {
	return c.GetString(string(UserIDKey))
}
