package middleware

import (
	"net/http"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the unified
// error envelope. Handlers call c.Error(err) and return; this middleware
// decides the status code and the response body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()
		traceID := c.GetString(RequestIDKey)

		if appError, ok := err.(*apperrors.AppError); ok {
			statusCode := appError.GetHTTPStatus()

			log.Warnw("Request failed",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"status", statusCode,
				"errorType", string(appError.Type),
				"message", appError.Message,
				"detail", appError.Detail,
				"traceId", traceID)

			message := appError.Message
			if appError.Detail != "" && includeDetail(appError.Type) {
				message = appError.Message + ": " + appError.Detail
			}

			c.JSON(statusCode, types.ErrorResponse{
				Error: types.ErrorInfo{
					Code:    errorCode(appError),
					Message: message,
					TraceID: traceID,
				},
			})
			return
		}

		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Request binding error")

			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error: types.ErrorInfo{
					Code:    types.ErrCodeValidationFailed,
					Message: "Invalid request body",
					TraceID: traceID,
				},
			})
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unhandled error")

		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: types.ErrorInfo{
				Code:    types.ErrCodeInternalError,
				Message: "An unexpected error occurred",
				TraceID: traceID,
			},
		})
	}
}

// includeDetail reports whether an error type's detail is safe to show to
// clients. Database and server details stay in the logs.
func includeDetail(errType apperrors.ErrorType) bool {
	switch errType {
	case apperrors.ValidationError, apperrors.NotFoundError, apperrors.ConflictError:
		return true
	}
	return false
}

func errorCode(appError *apperrors.AppError) string {
	if appError.Code != "" {
		return appError.Code
	}
	switch appError.Type {
	case apperrors.ValidationError:
		return types.ErrCodeValidationFailed
	case apperrors.NotFoundError:
		return types.ErrCodeNotFound
	case apperrors.AuthError:
		return types.ErrCodeUnauthorized
	case apperrors.ConflictError:
		return types.ErrCodeConflict
	case apperrors.RateLimitError:
		return types.ErrCodeTooManyRequests
	case apperrors.DatabaseError:
		return types.ErrCodeDatabaseError
	case apperrors.ExternalServiceError:
		return types.ErrCodeExternalServiceError
	default:
		return types.ErrCodeInternalError
	}
}
