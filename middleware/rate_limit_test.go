package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func newRateLimitRouter(t *testing.T) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(ErrorHandler())
	r.POST("/auth/login", AuthRateLimiter(db, 10, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, mock
}

func TestAuthRateLimiter(t *testing.T) {
	t.Run("under the limit", func(t *testing.T) {
		router, mock := newRateLimitRouter(t)
		mock.ExpectTxPipeline()
		mock.ExpectIncr("ratelimit:auth:1.2.3.4").SetVal(3)
		mock.ExpectExpire("ratelimit:auth:1.2.3.4", time.Minute).SetVal(true)
		mock.ExpectTxPipelineExec()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.Header.Set("X-Forwarded-For", "1.2.3.4")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "7", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("over the limit", func(t *testing.T) {
		router, mock := newRateLimitRouter(t)
		mock.ExpectTxPipeline()
		mock.ExpectIncr("ratelimit:auth:1.2.3.4").SetVal(11)
		mock.ExpectExpire("ratelimit:auth:1.2.3.4", time.Minute).SetVal(true)
		mock.ExpectTxPipelineExec()
		mock.ExpectTTL("ratelimit:auth:1.2.3.4").SetVal(42 * time.Second)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.Header.Set("X-Forwarded-For", "1.2.3.4")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "42", w.Header().Get("Retry-After"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("redis failure lets the request through", func(t *testing.T) {
		router, mock := newRateLimitRouter(t)
		mock.ExpectTxPipeline()
		mock.ExpectIncr("ratelimit:auth:1.2.3.4").SetErr(assert.AnError)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.Header.Set("X-Forwarded-For", "1.2.3.4")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
