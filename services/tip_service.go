package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/redis/go-redis/v9"
)

// TipService serves a deterministic tip of the day for the child's age
// bucket, cached in Redis until the day rolls over.
type TipService struct {
	tips      store.TipStore
	users     store.UserStore
	analytics store.AnalyticsStore
	redis     *redis.Client

	// now is swappable in tests.
	now func() time.Time
}

func NewTipService(tips store.TipStore, users store.UserStore, analytics store.AnalyticsStore, redisClient *redis.Client) *TipService {
	return &TipService{
		tips:      tips,
		users:     users,
		analytics: analytics,
		redis:     redisClient,
		now:       time.Now,
	}
}

// DailyTip returns today's tip for the user. The same user sees the same
// tip all day; the selection rotates through the bucket's catalog day by
// day. Cache failures fall through to the database.
func (s *TipService) DailyTip(ctx context.Context, userID string) (*types.DailyTip, error) {
	log := logger.GetLogger()
	today := s.now().UTC()
	cacheKey := "daily_tip:" + userID + ":" + today.Format("2006-01-02")

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			tip := &types.DailyTip{}
			if err := json.Unmarshal([]byte(cached), tip); err == nil {
				return tip, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warnw("Daily tip cache read failed", "userId", userID, "error", err)
		}
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewDatabaseError(err)
	}
	ranges := personalizedAgeRanges(profile, profile.BabyAgeDays(today))

	tips, err := s.tips.ListTips(ctx, ranges)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if len(tips) == 0 {
		// Narrow bucket with no tips yet: fall back to the whole catalog.
		tips, err = s.tips.ListTips(ctx, allAgeRanges)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if len(tips) == 0 {
			return nil, apperrors.NotFound("Daily tip", "catalog is empty")
		}
	}

	tip := tips[today.YearDay()%len(tips)]

	if s.redis != nil {
		if payload, err := json.Marshal(tip); err == nil {
			endOfDay := today.Truncate(24 * time.Hour).AddDate(0, 0, 1)
			if err := s.redis.Set(ctx, cacheKey, payload, endOfDay.Sub(today)).Err(); err != nil {
				log.Warnw("Daily tip cache write failed", "userId", userID, "error", err)
			}
		}
	}

	s.trackView(ctx, userID, tip.ID)
	return tip, nil
}

func (s *TipService) trackView(ctx context.Context, userID, tipID string) {
	data, _ := json.Marshal(map[string]string{"tipId": tipID})
	_, err := s.analytics.TrackEvent(ctx, &types.AnalyticsEvent{
		UserID:    userID,
		EventType: types.EventTipViewed,
		EventData: data,
	})
	if err != nil {
		logger.GetLogger().Warnw("Failed to track tip view", "userId", userID, "error", err)
	}
}
