package middleware

import (
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/LittleSteps/little-steps-backend/services"
	"github.com/gin-gonic/gin"
)

// APIRateLimiter limits authenticated API requests per user over a fixed
// window. Runs after the auth middleware so it can key on the user ID;
// unauthenticated requests fall back to the client IP.
func APIRateLimiter(rateLimiter services.RateLimiterInterface, requestsPerMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := GetUserID(c)
		if identifier == "" {
			identifier = getClientIP(c)
		}

		key := fmt.Sprintf("api:minute:%s", identifier)
		allowed, retryAfter, err := rateLimiter.CheckLimit(
			c.Request.Context(),
			key,
			requestsPerMinute,
			time.Minute,
		)
		if err != nil {
			// Keep the API available when Redis is down.
			logger.GetLogger().Warnw("API rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("X-RateLimit-Limit", strconv.Itoa(requestsPerMinute))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))

			_ = c.Error(apperrors.RateLimitExceeded("Too many requests. Please try again later.", int(retryAfter.Seconds())))
			c.Abort()
			return
		}

		c.Next()
	}
}
