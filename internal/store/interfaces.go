// Package store defines the persistence interfaces consumed by the service
// layer. The postgres subpackage provides the production implementation;
// mocks live under store/mocks for service tests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/LittleSteps/little-steps-backend/types"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")
)

// Transaction represents an in-progress database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
}

// UserStore handles user and profile data operations.
type UserStore interface {
	// CreateUserWithProfile inserts the user and an empty profile row in a
	// single transaction. Returns ErrDuplicate when the email is taken.
	CreateUserWithProfile(ctx context.Context, user *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	// UpdateUser applies a partial update. Returns ErrDuplicate when the new
	// email is taken by another user.
	UpdateUser(ctx context.Context, id string, update *types.UserUpdate) (*types.User, error)
	GetProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	UpdateProfileDetails(ctx context.Context, userID string, update *types.ProfileDetailsUpdate) (*types.UserProfile, error)
}

// MilestoneStore handles the milestone catalog and per-user completion.
type MilestoneStore interface {
	// ListMilestones returns catalog entries, optionally filtered by category
	// and by age in days (ageDays < 0 disables the age filter).
	ListMilestones(ctx context.Context, category types.MilestoneCategory, ageDays int) ([]*types.Milestone, error)
	GetMilestone(ctx context.Context, id string) (*types.Milestone, error)
	// ListUserMilestones returns the user's tracked milestones joined with
	// their catalog entries.
	ListUserMilestones(ctx context.Context, userID string, completedOnly bool) ([]*types.UserMilestone, error)
	// UpsertCompletion inserts or updates the user's completion row. The
	// second return value reports a false-to-true transition.
	UpsertCompletion(ctx context.Context, userID, milestoneID string, completed bool, notes *string) (*types.UserMilestone, bool, error)
	// CountCompleted returns the user's all-time completed milestone count.
	CountCompleted(ctx context.Context, userID string) (int, error)
	// ListCompletionTimes returns completed_at stamps at or after since.
	ListCompletionTimes(ctx context.Context, userID string, since time.Time) ([]time.Time, error)
	// ListRecentCompletions returns the most recently completed milestones
	// joined with their catalog entries, newest first.
	ListRecentCompletions(ctx context.Context, userID string, limit int) ([]*types.UserMilestone, error)
}

// ResourceStore handles the resource library and per-user saves.
type ResourceStore interface {
	ListResources(ctx context.Context, category types.ResourceCategory, limit int) ([]*types.Resource, error)
	// ListByAgeRanges returns resources whose age_range is in ageRanges.
	ListByAgeRanges(ctx context.Context, ageRanges []string, category types.ResourceCategory, limit int) ([]*types.Resource, error)
	// Search matches the query against title, content and tags. Title
	// matches rank first; newest-first within a rank.
	Search(ctx context.Context, params types.ResourceSearchParams) ([]*types.Resource, error)
	GetResource(ctx context.Context, id string) (*types.Resource, error)
	// SaveResource is idempotent: saving twice returns the original row.
	SaveResource(ctx context.Context, userID, resourceID string) (*types.SavedResource, error)
	ListSaved(ctx context.Context, userID string, category types.ResourceCategory) ([]*types.SavedResource, error)
	// UnsaveResource returns ErrNotFound when no save exists.
	UnsaveResource(ctx context.Context, userID, resourceID string) error
	// CountSaved returns the user's all-time saved resource count.
	CountSaved(ctx context.Context, userID string) (int, error)
}

// ConversationStore handles chat history persistence.
type ConversationStore interface {
	CreateConversation(ctx context.Context, conv *types.Conversation) (string, error)
	// ListRecent returns the newest conversations first.
	ListRecent(ctx context.Context, userID string, limit int) ([]*types.Conversation, error)
	DeleteAll(ctx context.Context, userID string) (int64, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// CountBetween counts conversations created in [from, to).
	CountBetween(ctx context.Context, userID string, from, to time.Time) (int, error)
}

// AnalyticsStore handles raw event persistence and aggregation.
type AnalyticsStore interface {
	TrackEvent(ctx context.Context, event *types.AnalyticsEvent) (string, error)
	CountEvents(ctx context.Context, userID string) (int, error)
	// CountEventsOfType counts events of one type with occurred_at in
	// [from, to).
	CountEventsOfType(ctx context.Context, userID, eventType string, from, to time.Time) (int, error)
	// FirstEventTime returns nil when the user has no events.
	FirstEventTime(ctx context.Context, userID string) (*time.Time, error)
	// EventTypeCounts returns per-type counts, highest first.
	EventTypeCounts(ctx context.Context, userID string) ([]types.EventTypeCount, error)
	// HourCounts returns per-hour-of-day counts, highest first.
	HourCounts(ctx context.Context, userID string) ([]HourCount, error)
}

// HourCount pairs an hour of day (0-23) with an event count.
type HourCount struct {
	Hour  int
	Count int
}

// TipStore handles the daily tip catalog.
type TipStore interface {
	// ListTips returns tips whose age_range is in ageRanges, oldest first so
	// the day-index selection is stable.
	ListTips(ctx context.Context, ageRanges []string) ([]*types.DailyTip, error)
}
