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

var resourceTestColumns = []string{
	"id", "title", "content", "category", "age_range", "tags", "created_at",
}

func TestResourceStore_Search(t *testing.T) {
	mock := newMockPool(t)
	s := NewResourceStore(mock)
	now := time.Now()

	rows := pgxmock.NewRows(resourceTestColumns).
		AddRow(uuid.NewString(), "Sleep training basics", "…", types.ResourceCategorySleep, "3-6months", []byte(`["sleep"]`), now).
		AddRow(uuid.NewString(), "Night feeds", "covers sleep too", types.ResourceCategoryFeeding, "0-3months", []byte(`[]`), now)

	mock.ExpectQuery(`SELECT (.+) FROM resources`).
		WithArgs("%sleep%", "sleep", "", "", 20).
		WillReturnRows(rows)

	results, err := s.Search(context.Background(), types.ResourceSearchParams{Query: "sleep", Limit: 20})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Sleep training basics", results[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceStore_Search_TagMembership(t *testing.T) {
	mock := newMockPool(t)
	s := NewResourceStore(mock)
	now := time.Now()

	// Tag matching is exact jsonb membership of the lower-cased query.
	mock.ExpectQuery(`tags \? lower\(\$2\)`).
		WithArgs("%Teething%", "Teething", "", "", 20).
		WillReturnRows(pgxmock.NewRows(resourceTestColumns).
			AddRow(uuid.NewString(), "Teething relief", "…", types.ResourceCategoryHealth, "3-6months", []byte(`["teething"]`), now))

	results, err := s.Search(context.Background(), types.ResourceSearchParams{Query: "Teething", Limit: 20})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceStore_CountSaved(t *testing.T) {
	mock := newMockPool(t)
	s := NewResourceStore(mock)
	userID := uuid.NewString()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM user_saved_resources`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := s.CountSaved(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestResourceStore_SaveResource(t *testing.T) {
	userID := uuid.NewString()
	resourceID := uuid.NewString()
	savedAt := time.Now()

	savedColumns := []string{"id", "user_id", "resource_id", "saved_at"}

	t.Run("save returns row", func(t *testing.T) {
		mock := newMockPool(t)
		s := NewResourceStore(mock)

		mock.ExpectQuery(`INSERT INTO user_saved_resources`).
			WithArgs(userID, resourceID).
			WillReturnRows(pgxmock.NewRows(savedColumns).
				AddRow(uuid.NewString(), userID, resourceID, savedAt))

		saved, err := s.SaveResource(context.Background(), userID, resourceID)
		require.NoError(t, err)
		assert.Equal(t, resourceID, saved.ResourceID)
		assert.Equal(t, savedAt, saved.SavedAt)
	})

	t.Run("unknown resource maps to ErrNotFound", func(t *testing.T) {
		mock := newMockPool(t)
		s := NewResourceStore(mock)

		mock.ExpectQuery(`INSERT INTO user_saved_resources`).
			WithArgs(userID, resourceID).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		_, err := s.SaveResource(context.Background(), userID, resourceID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestResourceStore_UnsaveResource(t *testing.T) {
	userID := uuid.NewString()
	resourceID := uuid.NewString()

	t.Run("deletes existing save", func(t *testing.T) {
		mock := newMockPool(t)
		s := NewResourceStore(mock)

		mock.ExpectExec(`DELETE FROM user_saved_resources`).
			WithArgs(userID, resourceID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err := s.UnsaveResource(context.Background(), userID, resourceID)
		assert.NoError(t, err)
	})

	t.Run("missing save maps to ErrNotFound", func(t *testing.T) {
		mock := newMockPool(t)
		s := NewResourceStore(mock)

		mock.ExpectExec(`DELETE FROM user_saved_resources`).
			WithArgs(userID, resourceID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := s.UnsaveResource(context.Background(), userID, resourceID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestResourceStore_GetResource_NotFound(t *testing.T) {
	mock := newMockPool(t)
	s := NewResourceStore(mock)

	mock.ExpectQuery(`SELECT (.+) FROM resources`).
		WithArgs("missing-id").
		WillReturnRows(pgxmock.NewRows(resourceTestColumns))

	_, err := s.GetResource(context.Background(), "missing-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
