package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitService_CheckLimit(t *testing.T) {
	ctx := context.Background()
	window := time.Minute

	t.Run("under the limit", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		svc := NewRateLimitService(db)

		mock.ExpectIncr("rate_limit:auth:1.2.3.4").SetVal(3)
		mock.ExpectExpire("rate_limit:auth:1.2.3.4", window).SetVal(true)

		allowed, retryAfter, err := svc.CheckLimit(ctx, "auth:1.2.3.4", 10, window)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("over the limit returns ttl", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		svc := NewRateLimitService(db)

		mock.ExpectIncr("rate_limit:auth:1.2.3.4").SetVal(11)
		mock.ExpectExpire("rate_limit:auth:1.2.3.4", window).SetVal(true)
		mock.ExpectTTL("rate_limit:auth:1.2.3.4").SetVal(42 * time.Second)

		allowed, retryAfter, err := svc.CheckLimit(ctx, "auth:1.2.3.4", 10, window)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 42*time.Second, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure propagates", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		svc := NewRateLimitService(db)

		mock.ExpectIncr("rate_limit:auth:1.2.3.4").SetErr(assert.AnError)

		_, _, err := svc.CheckLimit(ctx, "auth:1.2.3.4", 10, window)
		assert.Error(t, err)
	})
}
