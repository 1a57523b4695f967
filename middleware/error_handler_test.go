package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performWithError(t *testing.T, err error) (*httptest.ResponseRecorder, types.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestErrorHandler(t *testing.T) {
	t.Run("not found error", func(t *testing.T) {
		w, body := performWithError(t, apperrors.NotFound("Resource", "res-1"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, types.ErrCodeNotFound, body.Error.Code)
		assert.Contains(t, body.Error.Message, "Resource not found")
		assert.NotEmpty(t, body.Error.TraceID)
	})

	t.Run("validation error includes detail", func(t *testing.T) {
		w, body := performWithError(t, apperrors.ValidationFailed("Invalid input", "weeks must be positive"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, types.ErrCodeValidationFailed, body.Error.Code)
		assert.Contains(t, body.Error.Message, "weeks must be positive")
	})

	t.Run("database error hides detail", func(t *testing.T) {
		w, body := performWithError(t, apperrors.NewDatabaseError(errors.New("pq: connection refused")))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, types.ErrCodeDatabaseError, body.Error.Code)
		assert.NotContains(t, body.Error.Message, "connection refused")
	})

	t.Run("auth error keeps app-specific code", func(t *testing.T) {
		w, body := performWithError(t, apperrors.Unauthorized("token_expired", "Your session has expired"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "token_expired", body.Error.Code)
	})

	t.Run("duplicate email conflict maps to 400", func(t *testing.T) {
		w, body := performWithError(t, apperrors.Conflict("Email already registered", ""))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, types.ErrCodeConflict, body.Error.Code)
	})

	t.Run("unknown error maps to 500", func(t *testing.T) {
		w, body := performWithError(t, errors.New("something unexpected"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, types.ErrCodeInternalError, body.Error.Code)
		assert.NotContains(t, body.Error.Message, "something unexpected")
	})

	t.Run("trace id echoes the request header", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(RequestIDMiddleware())
		r.Use(ErrorHandler())
		r.GET("/boom", func(c *gin.Context) {
			_ = c.Error(apperrors.NotFound("Tip", "tip-1"))
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		req.Header.Set("X-Request-ID", "trace-me")
		r.ServeHTTP(w, req)

		var body types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "trace-me", body.Error.TraceID)
		assert.Equal(t, "trace-me", w.Header().Get("X-Request-ID"))
	})
}
