package services

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/internal/store/mocks"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMilestoneServiceForTest() (*MilestoneService, *mocks.MilestoneStore, *mocks.UserStore, *mocks.AnalyticsStore) {
	milestones := new(mocks.MilestoneStore)
	users := new(mocks.UserStore)
	analytics := new(mocks.AnalyticsStore)
	return NewMilestoneService(milestones, users, analytics), milestones, users, analytics
}

func TestMilestoneService_ListAgeAppropriate(t *testing.T) {
	ctx := context.Background()

	t.Run("age filter is in days from birth date", func(t *testing.T) {
		svc, milestones, users, _ := newMilestoneServiceForTest()
		birth := time.Now().AddDate(0, 0, -200)
		users.On("GetProfile", ctx, "user-1").Return(&types.UserProfile{BabyBirthDate: &birth}, nil)
		milestones.On("ListMilestones", ctx, types.MilestoneCategory(""), 200).
			Return([]*types.Milestone{{Title: "Sits unaided"}}, nil)

		result, err := svc.ListAgeAppropriate(ctx, "user-1", "")
		require.NoError(t, err)
		require.Len(t, result, 1)
		milestones.AssertExpectations(t)
	})

	t.Run("no birth date disables the age filter", func(t *testing.T) {
		svc, milestones, users, _ := newMilestoneServiceForTest()
		users.On("GetProfile", ctx, "user-1").Return(nil, store.ErrNotFound)
		milestones.On("ListMilestones", ctx, types.MilestoneCategoryMotor, -1).
			Return([]*types.Milestone{}, nil)

		_, err := svc.ListAgeAppropriate(ctx, "user-1", types.MilestoneCategoryMotor)
		require.NoError(t, err)
		milestones.AssertExpectations(t)
	})

	t.Run("invalid category rejected", func(t *testing.T) {
		svc, _, _, _ := newMilestoneServiceForTest()
		_, err := svc.ListAgeAppropriate(ctx, "user-1", "bogus")
		assert.Error(t, err)
	})
}

func TestMilestoneService_SetCompletion(t *testing.T) {
	ctx := context.Background()
	completedAt := time.Now()

	t.Run("new completion records an analytics event", func(t *testing.T) {
		svc, milestones, _, analytics := newMilestoneServiceForTest()
		milestones.On("UpsertCompletion", ctx, "user-1", "ms-1", true, (*string)(nil)).
			Return(&types.UserMilestone{MilestoneID: "ms-1", Completed: true, CompletedAt: &completedAt}, true, nil)
		analytics.On("TrackEvent", ctx, mock.MatchedBy(func(e *types.AnalyticsEvent) bool {
			return e.EventType == types.EventMilestoneCompleted
		})).Return("evt-1", nil)

		um, err := svc.SetCompletion(ctx, "user-1", "ms-1", types.MilestoneCompletionUpdate{Completed: true})
		require.NoError(t, err)
		assert.True(t, um.Completed)
		analytics.AssertExpectations(t)
	})

	t.Run("repeat completion does not re-record the event", func(t *testing.T) {
		svc, milestones, _, analytics := newMilestoneServiceForTest()
		milestones.On("UpsertCompletion", ctx, "user-1", "ms-1", true, (*string)(nil)).
			Return(&types.UserMilestone{MilestoneID: "ms-1", Completed: true, CompletedAt: &completedAt}, false, nil)

		_, err := svc.SetCompletion(ctx, "user-1", "ms-1", types.MilestoneCompletionUpdate{Completed: true})
		require.NoError(t, err)
		analytics.AssertNotCalled(t, "TrackEvent", mock.Anything, mock.Anything)
	})

	t.Run("tracking failure does not fail completion", func(t *testing.T) {
		svc, milestones, _, analytics := newMilestoneServiceForTest()
		milestones.On("UpsertCompletion", ctx, "user-1", "ms-1", true, (*string)(nil)).
			Return(&types.UserMilestone{MilestoneID: "ms-1", Completed: true}, true, nil)
		analytics.On("TrackEvent", ctx, mock.Anything).Return("", assert.AnError)

		_, err := svc.SetCompletion(ctx, "user-1", "ms-1", types.MilestoneCompletionUpdate{Completed: true})
		assert.NoError(t, err)
	})

	t.Run("unknown milestone maps to 404", func(t *testing.T) {
		svc, milestones, _, _ := newMilestoneServiceForTest()
		milestones.On("UpsertCompletion", ctx, "user-1", "missing", true, (*string)(nil)).
			Return(nil, false, store.ErrNotFound)

		_, err := svc.SetCompletion(ctx, "user-1", "missing", types.MilestoneCompletionUpdate{Completed: true})
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.GetHTTPStatus())
	})
}

func TestMilestoneService_ProgressStats(t *testing.T) {
	ctx := context.Background()

	t.Run("total is the age appropriate catalog", func(t *testing.T) {
		svc, milestones, users, _ := newMilestoneServiceForTest()
		birth := time.Now().AddDate(0, 0, -200)
		users.On("GetProfile", ctx, "user-1").Return(&types.UserProfile{BabyBirthDate: &birth}, nil)
		milestones.On("ListMilestones", ctx, types.MilestoneCategory(""), 200).
			Return([]*types.Milestone{{ID: "m-1"}, {ID: "m-2"}, {ID: "m-3"}, {ID: "m-4"}}, nil)
		milestones.On("CountCompleted", ctx, "user-1").Return(3, nil)
		recent := []*types.UserMilestone{
			{MilestoneID: "m-3", Completed: true, Milestone: &types.Milestone{Title: "Sits without support"}},
			{MilestoneID: "m-1", Completed: true, Milestone: &types.Milestone{Title: "Rolls over"}},
			{MilestoneID: "m-2", Completed: true, Milestone: &types.Milestone{Title: "First social smile"}},
		}
		milestones.On("ListRecentCompletions", ctx, "user-1", recentCompletionsLimit).Return(recent, nil)

		progress, err := svc.ProgressStats(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 4, progress.Total)
		assert.Equal(t, 3, progress.Completed)
		assert.InDelta(t, 75.0, progress.Percentage, 0.0001)
		require.Len(t, progress.RecentCompletions, 3)
		assert.Equal(t, "Sits without support", progress.RecentCompletions[0].Milestone.Title)
	})

	t.Run("empty catalog clamps the percentage", func(t *testing.T) {
		svc, milestones, users, _ := newMilestoneServiceForTest()
		users.On("GetProfile", ctx, "user-1").Return(nil, store.ErrNotFound)
		milestones.On("ListMilestones", ctx, types.MilestoneCategory(""), -1).
			Return([]*types.Milestone{}, nil)
		milestones.On("CountCompleted", ctx, "user-1").Return(2, nil)
		milestones.On("ListRecentCompletions", ctx, "user-1", recentCompletionsLimit).
			Return([]*types.UserMilestone{}, nil)

		progress, err := svc.ProgressStats(ctx, "user-1")
		require.NoError(t, err)
		assert.Zero(t, progress.Total)
		assert.Zero(t, progress.Percentage)
	})
}
