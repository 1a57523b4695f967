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

func TestMilestoneStore_ListMilestones(t *testing.T) {
	mock := newMockPool(t)
	s := NewMilestoneStore(mock)
	now := time.Now()

	rows := pgxmock.NewRows([]string{
		"id", "title", "description", "category", "age_range_start", "age_range_end", "created_at",
	}).
		AddRow(uuid.NewString(), "First smile", "Smiles responsively", types.MilestoneCategorySocial, 14, 56, now).
		AddRow(uuid.NewString(), "Rolls over", "Rolls both ways", types.MilestoneCategoryMotor, 90, 180, now)

	mock.ExpectQuery(`SELECT (.+) FROM milestones`).
		WithArgs("", 120).
		WillReturnRows(rows)

	milestones, err := s.ListMilestones(context.Background(), "", 120)
	require.NoError(t, err)
	require.Len(t, milestones, 2)
	assert.Equal(t, "First smile", milestones[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMilestoneStore_UpsertCompletion(t *testing.T) {
	userID := uuid.NewString()
	milestoneID := uuid.NewString()
	now := time.Now()

	columns := []string{
		"id", "user_id", "milestone_id", "completed", "completed_at", "notes", "created_at", "coalesce",
	}

	t.Run("false to true transition is reported", func(t *testing.T) {
		mock := newMockPool(t)
		s := NewMilestoneStore(mock)

		mock.ExpectQuery(`INSERT INTO user_milestones`).
			WithArgs(userID, milestoneID, true, (*string)(nil)).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(uuid.NewString(), userID, milestoneID, true, &now, "", now, false))

		um, newlyCompleted, err := s.UpsertCompletion(context.Background(), userID, milestoneID, true, nil)
		require.NoError(t, err)
		assert.True(t, um.Completed)
		assert.True(t, newlyCompleted)
	})

	t.Run("repeat completion is not a transition", func(t *testing.T) {
		mock := newMockPool(t)
		s := NewMilestoneStore(mock)

		mock.ExpectQuery(`INSERT INTO user_milestones`).
			WithArgs(userID, milestoneID, true, (*string)(nil)).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(uuid.NewString(), userID, milestoneID, true, &now, "", now, true))

		_, newlyCompleted, err := s.UpsertCompletion(context.Background(), userID, milestoneID, true, nil)
		require.NoError(t, err)
		assert.False(t, newlyCompleted)
	})

	t.Run("unknown milestone maps to ErrNotFound", func(t *testing.T) {
		mock := newMockPool(t)
		s := NewMilestoneStore(mock)

		mock.ExpectQuery(`INSERT INTO user_milestones`).
			WithArgs(userID, milestoneID, true, (*string)(nil)).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		_, _, err := s.UpsertCompletion(context.Background(), userID, milestoneID, true, nil)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestMilestoneStore_CountCompleted(t *testing.T) {
	mock := newMockPool(t)
	s := NewMilestoneStore(mock)
	userID := uuid.NewString()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM user_milestones`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := s.CountCompleted(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestMilestoneStore_ListRecentCompletions(t *testing.T) {
	mock := newMockPool(t)
	s := NewMilestoneStore(mock)
	userID := uuid.NewString()
	now := time.Now()
	earlier := now.Add(-time.Hour)

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "milestone_id", "completed", "completed_at", "notes", "created_at",
		"m_id", "title", "description", "category", "age_range_start", "age_range_end", "m_created_at",
	}).
		AddRow(uuid.NewString(), userID, "m-2", true, &now, "", now,
			"m-2", "Crawls", "Moves on hands and knees", types.MilestoneCategoryMotor, 210, 330, now).
		AddRow(uuid.NewString(), userID, "m-1", true, &earlier, "", now,
			"m-1", "Sits without support", "Sits steadily", types.MilestoneCategoryMotor, 180, 270, now)

	mock.ExpectQuery(`FROM user_milestones um`).
		WithArgs(userID, 5).
		WillReturnRows(rows)

	recent, err := s.ListRecentCompletions(context.Background(), userID, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Crawls", recent[0].Milestone.Title)
	assert.Equal(t, "Sits without support", recent[1].Milestone.Title)
}
