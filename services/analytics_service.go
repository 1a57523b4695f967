package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/types"
)

const (
	defaultProgressWeeks = 4
	maxProgressWeeks     = 12
	topHoursLimit        = 3
	topEventTypesLimit   = 5
)

// AnalyticsService implements event tracking, weekly progress and insights.
type AnalyticsService struct {
	analytics     store.AnalyticsStore
	milestones    store.MilestoneStore
	conversations store.ConversationStore
	resources     store.ResourceStore

	// now is swappable in tests.
	now func() time.Time
}

func NewAnalyticsService(analytics store.AnalyticsStore, milestones store.MilestoneStore, conversations store.ConversationStore, resources store.ResourceStore) *AnalyticsService {
	return &AnalyticsService{
		analytics:     analytics,
		milestones:    milestones,
		conversations: conversations,
		resources:     resources,
		now:           time.Now,
	}
}

// Track appends one client-reported event.
func (s *AnalyticsService) Track(ctx context.Context, userID string, req types.TrackEventRequest) (*types.AnalyticsEvent, error) {
	if strings.TrimSpace(req.EventType) == "" {
		return nil, apperrors.ValidationFailed("Event type is required", "")
	}

	event := &types.AnalyticsEvent{
		UserID:    userID,
		EventType: req.EventType,
		EventData: req.EventData,
	}
	id, err := s.analytics.TrackEvent(ctx, event)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	event.ID = id
	event.OccurredAt = s.now()
	return event, nil
}

// WeeklyProgress reports trailing 7-day windows, newest first. Window k
// spans the 7 calendar days ending 7k days before today, in UTC.
func (s *AnalyticsService) WeeklyProgress(ctx context.Context, userID string, weeks int) (*types.WeeklyProgressReport, error) {
	if weeks <= 0 {
		weeks = defaultProgressWeeks
	}
	if weeks > maxProgressWeeks {
		weeks = maxProgressWeeks
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	oldestStart := today.AddDate(0, 0, -(7*(weeks-1) + 6))

	completions, err := s.milestones.ListCompletionTimes(ctx, userID, oldestStart)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	report := &types.WeeklyProgressReport{Weeks: make([]types.WeeklyWindow, 0, weeks)}
	for k := 0; k < weeks; k++ {
		end := today.AddDate(0, 0, -7*k)
		start := end.AddDate(0, 0, -6)
		windowEnd := end.AddDate(0, 0, 1) // exclusive

		completed := 0
		for _, t := range completions {
			if !t.Before(start) && t.Before(windowEnd) {
				completed++
			}
		}

		resourceViews, err := s.analytics.CountEventsOfType(ctx, userID, types.EventResourceViewed, start, windowEnd)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}

		chats, err := s.conversations.CountBetween(ctx, userID, start, windowEnd)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}

		tipViews, err := s.analytics.CountEventsOfType(ctx, userID, types.EventTipViewed, start, windowEnd)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}

		report.Weeks = append(report.Weeks, types.WeeklyWindow{
			WeekStart:           start.Format("2006-01-02"),
			WeekEnd:             end.Format("2006-01-02"),
			MilestonesCompleted: completed,
			ResourcesViewed:     resourceViews,
			ChatInteractions:    chats,
			TipsViewed:          tipViews,
		})
	}
	return report, nil
}

// Insights aggregates totals, activity hours and an engagement score.
func (s *AnalyticsService) Insights(ctx context.Context, userID string) (*types.InsightsReport, error) {
	totalEvents, err := s.analytics.CountEvents(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	conversations, err := s.conversations.CountByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	completedMilestones, err := s.milestones.CountCompleted(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	savedResources, err := s.resources.CountSaved(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	first, err := s.analytics.FirstEventTime(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	hourCounts, err := s.analytics.HourCounts(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	typeCounts, err := s.analytics.EventTypeCounts(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	daysActive := 0
	if first != nil {
		daysActive = int(s.now().Sub(*first).Hours()/24) + 1
	}

	report := &types.InsightsReport{
		TotalEvents:         totalEvents,
		TotalConversations:  conversations,
		MilestonesCompleted: completedMilestones,
		SavedResources:      savedResources,
		DaysActive:          daysActive,
		EngagementScore:     engagementScore(conversations, completedMilestones, daysActive),
		TopHours:            topHours(hourCounts),
		TopEventTypes:       truncateTypeCounts(typeCounts),
	}
	return report, nil
}

// engagementScore weighs milestones double against conversations, scaled by
// activity span and capped at 100.
func engagementScore(conversations, milestonesCompleted, daysActive int) float64 {
	if daysActive <= 0 {
		return 0
	}
	score := float64(conversations+milestonesCompleted*2) / float64(daysActive) * 10
	if score > 100 {
		return 100
	}
	return score
}

func topHours(counts []store.HourCount) []int {
	hours := make([]int, 0, topHoursLimit)
	for _, c := range counts {
		if len(hours) == topHoursLimit {
			break
		}
		hours = append(hours, c.Hour)
	}
	return hours
}

func truncateTypeCounts(counts []types.EventTypeCount) []types.EventTypeCount {
	if len(counts) > topEventTypesLimit {
		return counts[:topEventTypesLimit]
	}
	return counts
}
