package services

import (
	"context"
	"errors"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/types"
)

// UserService implements account and profile management.
type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// GetUser returns the account record.
func (s *UserService) GetUser(ctx context.Context, userID string) (*types.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User", userID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return user, nil
}

// UpdateUser applies a partial update to name and email.
func (s *UserService) UpdateUser(ctx context.Context, userID string, update *types.UserUpdate) (*types.User, error) {
	if update.Name == nil && update.Email == nil {
		return nil, apperrors.ValidationFailed("Nothing to update", "provide name or email")
	}

	user, err := s.users.UpdateUser(ctx, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, apperrors.Conflict("Email already registered", "")
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NotFound("User", userID)
		default:
			return nil, apperrors.NewDatabaseError(err)
		}
	}
	return user, nil
}

// GetProfile returns the user's baby profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Profile", userID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return profile, nil
}

// UpdateProfileDetails applies a partial update to the baby profile.
func (s *UserService) UpdateProfileDetails(ctx context.Context, userID string, update *types.ProfileDetailsUpdate) (*types.UserProfile, error) {
	if update.ParentingStage != nil && !update.ParentingStage.Valid() {
		return nil, apperrors.ValidationFailed("Invalid parenting stage",
			"expected one of: expecting, newborn, infant, toddler")
	}

	profile, err := s.users.UpdateProfileDetails(ctx, userID, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Profile", userID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return profile, nil
}

// Onboard performs the one-shot profile setup after registration.
func (s *UserService) Onboard(ctx context.Context, userID string, req *types.OnboardingRequest) (*types.UserProfile, error) {
	update := &types.ProfileDetailsUpdate{
		BabyBirthDate:  req.BabyBirthDate,
		ParentingStage: req.ParentingStage,
		Preferences:    req.Preferences,
	}
	if req.Timezone != "" {
		update.Timezone = &req.Timezone
	}
	return s.UpdateProfileDetails(ctx, userID, update)
}
