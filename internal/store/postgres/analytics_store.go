package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/types"
)

// AnalyticsStore implements the store.AnalyticsStore interface using
// PostgreSQL.
type AnalyticsStore struct {
	db DB
}

// NewAnalyticsStore creates a new AnalyticsStore instance.
func NewAnalyticsStore(db DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// TrackEvent appends one event and returns its ID.
func (s *AnalyticsStore) TrackEvent(ctx context.Context, event *types.AnalyticsEvent) (string, error) {
	query := `
		INSERT INTO analytics_events (user_id, event_type, event_data)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id string
	err := s.db.QueryRow(ctx, query,
		event.UserID,
		event.EventType,
		event.EventData,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("tracking event: %w", err)
	}
	return id, nil
}

// CountEvents returns the user's total event count.
func (s *AnalyticsStore) CountEvents(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM analytics_events
		WHERE user_id = $1`

	var count int
	if err := s.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountEventsOfType counts events of one type with occurred_at in [from, to).
// The exclusive upper bound keeps an event stamped exactly at a window
// boundary out of the next window.
func (s *AnalyticsStore) CountEventsOfType(ctx context.Context, userID, eventType string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM analytics_events
		WHERE user_id = $1 AND event_type = $2
			AND occurred_at >= $3 AND occurred_at < $4`

	var count int
	if err := s.db.QueryRow(ctx, query, userID, eventType, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// FirstEventTime returns the timestamp of the user's earliest event, or nil
// when none exist.
func (s *AnalyticsStore) FirstEventTime(ctx context.Context, userID string) (*time.Time, error) {
	query := `
		SELECT MIN(occurred_at)
		FROM analytics_events
		WHERE user_id = $1`

	var first *time.Time
	if err := s.db.QueryRow(ctx, query, userID).Scan(&first); err != nil {
		return nil, err
	}
	return first, nil
}

// EventTypeCounts returns per-type counts, highest first.
func (s *AnalyticsStore) EventTypeCounts(ctx context.Context, userID string) ([]types.EventTypeCount, error) {
	query := `
		SELECT event_type, COUNT(*)
		FROM analytics_events
		WHERE user_id = $1
		GROUP BY event_type
		ORDER BY COUNT(*) DESC, event_type`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []types.EventTypeCount
	for rows.Next() {
		var c types.EventTypeCount
		if err := rows.Scan(&c.EventType, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// HourCounts returns per-hour-of-day counts, highest first. Hours use UTC.
func (s *AnalyticsStore) HourCounts(ctx context.Context, userID string) ([]store.HourCount, error) {
	query := `
		SELECT EXTRACT(HOUR FROM occurred_at AT TIME ZONE 'UTC')::int AS hour, COUNT(*)
		FROM analytics_events
		WHERE user_id = $1
		GROUP BY hour
		ORDER BY COUNT(*) DESC, hour`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []store.HourCount
	for rows.Next() {
		var c store.HourCount
		if err := rows.Scan(&c.Hour, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
