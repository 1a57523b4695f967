package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func userRow(user *types.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "email", "name", "password_hash", "is_active", "created_at", "updated_at",
	}).AddRow(user.ID, user.Email, user.Name, user.PasswordHash, user.IsActive, user.CreatedAt, user.UpdatedAt)
}

func testUser() *types.User {
	now := time.Now()
	return &types.User{
		ID:           uuid.NewString(),
		Email:        "parent@example.com",
		Name:         "Jamie",
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserStore_CreateUserWithProfile(t *testing.T) {
	mock := newMockPool(t)
	s := NewUserStore(mock)
	user := testUser()

	t.Run("creates user and profile in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(user.Email, user.Name, user.PasswordHash).
			WillReturnRows(userRow(user))
		mock.ExpectExec(`INSERT INTO user_profiles`).
			WithArgs(user.ID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
		mock.ExpectRollback()

		created, err := s.CreateUserWithProfile(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, user.ID, created.ID)
		assert.Equal(t, user.Email, created.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to ErrDuplicate", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(user.Email, user.Name, user.PasswordHash).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		_, err := s.CreateUserWithProfile(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserStore_GetUserByEmail(t *testing.T) {
	mock := newMockPool(t)
	s := NewUserStore(mock)
	user := testUser()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(user.Email).
			WillReturnRows(userRow(user))

		got, err := s.GetUserByEmail(context.Background(), user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("nobody@example.com").
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "email", "name", "password_hash", "is_active", "created_at", "updated_at",
			}))

		_, err := s.GetUserByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUserStore_UpdateUser(t *testing.T) {
	mock := newMockPool(t)
	s := NewUserStore(mock)
	user := testUser()
	newName := "Jamie Updated"

	t.Run("partial update", func(t *testing.T) {
		updated := *user
		updated.Name = newName

		mock.ExpectQuery(`UPDATE users`).
			WithArgs(&newName, (*string)(nil), user.ID).
			WillReturnRows(userRow(&updated))

		got, err := s.UpdateUser(context.Background(), user.ID, &types.UserUpdate{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, newName, got.Name)
	})

	t.Run("email collision maps to ErrDuplicate", func(t *testing.T) {
		email := "taken@example.com"
		mock.ExpectQuery(`UPDATE users`).
			WithArgs((*string)(nil), &email, user.ID).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := s.UpdateUser(context.Background(), user.ID, &types.UserUpdate{Email: &email})
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})
}

func TestUserStore_GetProfile(t *testing.T) {
	mock := newMockPool(t)
	s := NewUserStore(mock)
	userID := uuid.NewString()
	birth := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	stage := types.StageInfant
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM user_profiles`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "baby_birth_date", "parenting_stage", "preferences",
			"timezone", "created_at", "updated_at",
		}).AddRow(uuid.NewString(), userID, &birth, &stage, []byte(`{}`), "UTC", now, now))

	profile, err := s.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	require.NotNil(t, profile.ParentingStage)
	assert.Equal(t, types.StageInfant, *profile.ParentingStage)
	require.NotNil(t, profile.BabyBirthDate)
	assert.Equal(t, birth, *profile.BabyBirthDate)
}
