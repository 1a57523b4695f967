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
)

// MilestoneService implements milestone listing, completion and progress.
type MilestoneService struct {
	milestones store.MilestoneStore
	users      store.UserStore
	analytics  store.AnalyticsStore
}

func NewMilestoneService(milestones store.MilestoneStore, users store.UserStore, analytics store.AnalyticsStore) *MilestoneService {
	return &MilestoneService{
		milestones: milestones,
		users:      users,
		analytics:  analytics,
	}
}

// ListAgeAppropriate returns catalog milestones whose day range covers the
// child's age. Without a birth date on file the whole catalog is returned.
func (s *MilestoneService) ListAgeAppropriate(ctx context.Context, userID string, category types.MilestoneCategory) ([]*types.Milestone, error) {
	if category != "" && !category.Valid() {
		return nil, apperrors.ValidationFailed("Invalid milestone category",
			"expected one of: motor, cognitive, social, language")
	}

	ageDays, err := s.babyAgeDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	milestones, err := s.milestones.ListMilestones(ctx, category, ageDays)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return milestones, nil
}

// babyAgeDays resolves the child's age in days, or -1 when no birth date is
// on file.
func (s *MilestoneService) babyAgeDays(ctx context.Context, userID string) (int, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return 0, apperrors.NewDatabaseError(err)
	}
	return profile.BabyAgeDays(time.Now()), nil
}

// ListUserProgress returns the user's tracked milestones.
func (s *MilestoneService) ListUserProgress(ctx context.Context, userID string, completedOnly bool) ([]*types.UserMilestone, error) {
	tracked, err := s.milestones.ListUserMilestones(ctx, userID, completedOnly)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return tracked, nil
}

// SetCompletion marks a milestone complete or incomplete. Repeating the same
// state is a no-op: the original completed_at stamp is preserved. A
// false-to-true transition records a milestone_completed analytics event.
func (s *MilestoneService) SetCompletion(ctx context.Context, userID, milestoneID string, update types.MilestoneCompletionUpdate) (*types.UserMilestone, error) {
	um, newlyCompleted, err := s.milestones.UpsertCompletion(ctx, userID, milestoneID, update.Completed, update.Notes)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Milestone", milestoneID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	if newlyCompleted {
		s.trackCompletion(ctx, userID, milestoneID)
	}
	return um, nil
}

// trackCompletion records the analytics event. Tracking failures never fail
// the completion itself.
func (s *MilestoneService) trackCompletion(ctx context.Context, userID, milestoneID string) {
	data, _ := json.Marshal(map[string]string{"milestoneId": milestoneID})
	_, err := s.analytics.TrackEvent(ctx, &types.AnalyticsEvent{
		UserID:    userID,
		EventType: types.EventMilestoneCompleted,
		EventData: data,
	})
	if err != nil {
		logger.GetLogger().Warnw("Failed to track milestone completion",
			"userId", userID, "milestoneId", milestoneID, "error", err)
	}
}

const recentCompletionsLimit = 5

// ProgressStats summarizes completion: total counts the age-appropriate
// catalog, completed counts all-time completions, and the five most recent
// completions ride along newest first.
func (s *MilestoneService) ProgressStats(ctx context.Context, userID string) (*types.MilestoneProgress, error) {
	ageDays, err := s.babyAgeDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	ageAppropriate, err := s.milestones.ListMilestones(ctx, "", ageDays)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	completed, err := s.milestones.CountCompleted(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	recent, err := s.milestones.ListRecentCompletions(ctx, userID, recentCompletionsLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	progress := &types.MilestoneProgress{
		Total:             len(ageAppropriate),
		Completed:         completed,
		RecentCompletions: recent,
	}
	if progress.Total > 0 {
		progress.Percentage = float64(completed) / float64(progress.Total) * 100
	}
	return progress, nil
}
