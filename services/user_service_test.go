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

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("empty update rejected", func(t *testing.T) {
		users := new(mocks.UserStore)
		svc := NewUserService(users)

		_, err := svc.UpdateUser(ctx, "user-1", &types.UserUpdate{})
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ValidationError, appErr.Type)
		users.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("email collision maps to conflict", func(t *testing.T) {
		users := new(mocks.UserStore)
		svc := NewUserService(users)

		email := "taken@example.com"
		users.On("UpdateUser", ctx, "user-1", mock.Anything).Return(nil, store.ErrDuplicate)

		_, err := svc.UpdateUser(ctx, "user-1", &types.UserUpdate{Email: &email})
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ConflictError, appErr.Type)
	})

	t.Run("partial update succeeds", func(t *testing.T) {
		users := new(mocks.UserStore)
		svc := NewUserService(users)

		name := "Sam"
		users.On("UpdateUser", ctx, "user-1", mock.MatchedBy(func(u *types.UserUpdate) bool {
			return u.Name != nil && *u.Name == "Sam" && u.Email == nil
		})).Return(&types.User{ID: "user-1", Name: "Sam"}, nil)

		user, err := svc.UpdateUser(ctx, "user-1", &types.UserUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Sam", user.Name)
	})
}

func TestUserService_UpdateProfileDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid stage rejected", func(t *testing.T) {
		users := new(mocks.UserStore)
		svc := NewUserService(users)

		stage := types.ParentingStage("teenager")
		_, err := svc.UpdateProfileDetails(ctx, "user-1", &types.ProfileDetailsUpdate{ParentingStage: &stage})
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ValidationError, appErr.Type)
	})

	t.Run("expecting stage accepted", func(t *testing.T) {
		users := new(mocks.UserStore)
		svc := NewUserService(users)

		stage := types.StageExpecting
		update := &types.ProfileDetailsUpdate{ParentingStage: &stage}
		users.On("UpdateProfileDetails", ctx, "user-1", update).
			Return(&types.UserProfile{UserID: "user-1", ParentingStage: &stage}, nil)

		profile, err := svc.UpdateProfileDetails(ctx, "user-1", update)
		require.NoError(t, err)
		assert.Equal(t, types.StageExpecting, *profile.ParentingStage)
	})

	t.Run("missing profile maps to not found", func(t *testing.T) {
		users := new(mocks.UserStore)
		svc := NewUserService(users)

		users.On("UpdateProfileDetails", ctx, "user-1", mock.Anything).Return(nil, store.ErrNotFound)

		_, err := svc.UpdateProfileDetails(ctx, "user-1", &types.ProfileDetailsUpdate{})
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.NotFoundError, appErr.Type)
	})
}

func TestUserService_Onboard(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserStore)
	svc := NewUserService(users)

	birth := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	stage := types.StageNewborn

	users.On("UpdateProfileDetails", ctx, "user-1", mock.MatchedBy(func(u *types.ProfileDetailsUpdate) bool {
		return u.BabyBirthDate != nil && u.BabyBirthDate.Equal(birth) &&
			u.ParentingStage != nil && *u.ParentingStage == stage &&
			u.Timezone != nil && *u.Timezone == "Europe/Berlin"
	})).Return(&types.UserProfile{UserID: "user-1", BabyBirthDate: &birth}, nil)

	profile, err := svc.Onboard(ctx, "user-1", &types.OnboardingRequest{
		BabyBirthDate:  &birth,
		ParentingStage: &stage,
		Timezone:       "Europe/Berlin",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
}
