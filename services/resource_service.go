package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/LittleSteps/little-steps-backend/types"
)

const defaultResourceLimit = 20

// ResourceService implements the resource library: personalized listing,
// search and per-user bookmarks.
type ResourceService struct {
	resources store.ResourceStore
	users     store.UserStore
	analytics store.AnalyticsStore
}

func NewResourceService(resources store.ResourceStore, users store.UserStore, analytics store.AnalyticsStore) *ResourceService {
	return &ResourceService{
		resources: resources,
		users:     users,
		analytics: analytics,
	}
}

// Personalized returns resources for the child's age bucket plus "all".
// Without a birth date it falls back to the stage alias, then the whole
// catalog.
func (s *ResourceService) Personalized(ctx context.Context, userID string, category types.ResourceCategory, limit int) ([]*types.Resource, error) {
	if category != "" && !category.Valid() {
		return nil, apperrors.ValidationFailed("Invalid resource category",
			"expected one of: sleep, feeding, development, health, general")
	}
	if limit <= 0 {
		limit = defaultResourceLimit
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewDatabaseError(err)
	}
	ranges := personalizedAgeRanges(profile, profile.BabyAgeDays(time.Now()))

	resources, err := s.resources.ListByAgeRanges(ctx, ranges, category, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	s.track(ctx, userID, types.EventResourcesViewed, map[string]any{
		"category": string(category),
		"count":    len(resources),
	})
	return resources, nil
}

// Search matches the query against titles, content and tags.
func (s *ResourceService) Search(ctx context.Context, userID string, params types.ResourceSearchParams) ([]*types.Resource, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, apperrors.ValidationFailed("Search query is required", "")
	}
	if params.Category != "" && !params.Category.Valid() {
		return nil, apperrors.ValidationFailed("Invalid resource category",
			"expected one of: sleep, feeding, development, health, general")
	}
	if params.Limit <= 0 {
		params.Limit = defaultResourceLimit
	}

	results, err := s.resources.Search(ctx, params)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	s.track(ctx, userID, types.EventResourceSearch, map[string]any{
		"query":   params.Query,
		"results": len(results),
	})
	return results, nil
}

// GetByID returns one resource and records the view.
func (s *ResourceService) GetByID(ctx context.Context, userID, resourceID string) (*types.Resource, error) {
	resource, err := s.resources.GetResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Resource", resourceID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	s.track(ctx, userID, types.EventResourceViewed, map[string]any{
		"resourceId": resourceID,
	})
	return resource, nil
}

// Save bookmarks a resource. Saving twice returns the original bookmark
// unchanged.
func (s *ResourceService) Save(ctx context.Context, userID, resourceID string) (*types.SavedResource, error) {
	saved, err := s.resources.SaveResource(ctx, userID, resourceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Resource", resourceID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	s.track(ctx, userID, types.EventResourceSaved, map[string]any{
		"resourceId": resourceID,
	})
	return saved, nil
}

// ListSaved returns the user's bookmarks, most recent first.
func (s *ResourceService) ListSaved(ctx context.Context, userID string, category types.ResourceCategory) ([]*types.SavedResource, error) {
	if category != "" && !category.Valid() {
		return nil, apperrors.ValidationFailed("Invalid resource category",
			"expected one of: sleep, feeding, development, health, general")
	}

	saved, err := s.resources.ListSaved(ctx, userID, category)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return saved, nil
}

// Unsave removes a bookmark.
func (s *ResourceService) Unsave(ctx context.Context, userID, resourceID string) error {
	err := s.resources.UnsaveResource(ctx, userID, resourceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Saved resource", resourceID)
		}
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// track records an analytics event; failures are logged and swallowed.
func (s *ResourceService) track(ctx context.Context, userID, eventType string, data map[string]any) {
	payload, _ := json.Marshal(data)
	_, err := s.analytics.TrackEvent(ctx, &types.AnalyticsEvent{
		UserID:    userID,
		EventType: eventType,
		EventData: payload,
	})
	if err != nil {
		logger.GetLogger().Warnw("Failed to track resource event",
			"userId", userID, "eventType", eventType, "error", err)
	}
}
