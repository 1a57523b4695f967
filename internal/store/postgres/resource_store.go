package postgres

import (
	"context"
	"errors"

	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/jackc/pgx/v5"
)

// ResourceStore implements the store.ResourceStore interface using
// PostgreSQL.
type ResourceStore struct {
	db DB
}

// NewResourceStore creates a new ResourceStore instance.
func NewResourceStore(db DB) *ResourceStore {
	return &ResourceStore{db: db}
}

const resourceColumns = `id, title, content, category, age_range, tags, created_at`

func scanResource(row pgx.Row) (*types.Resource, error) {
	r := &types.Resource{}
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Content,
		&r.Category,
		&r.AgeRange,
		&r.Tags,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *ResourceStore) collectResources(rows pgx.Rows) ([]*types.Resource, error) {
	defer rows.Close()

	var resources []*types.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// ListResources returns library entries, newest first. An empty category
// disables the filter.
func (s *ResourceStore) ListResources(ctx context.Context, category types.ResourceCategory, limit int) ([]*types.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, string(category), limit)
	if err != nil {
		return nil, err
	}
	return s.collectResources(rows)
}

// ListByAgeRanges returns resources whose age_range is one of ageRanges.
func (s *ResourceStore) ListByAgeRanges(ctx context.Context, ageRanges []string, category types.ResourceCategory, limit int) ([]*types.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE age_range = ANY($1)
			AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := s.db.Query(ctx, query, ageRanges, string(category), limit)
	if err != nil {
		return nil, err
	}
	return s.collectResources(rows)
}

// Search matches the query against title and content as substrings and
// against the tag set as an exact lower-cased member. Title matches rank
// before the rest; newest first within a rank.
func (s *ResourceStore) Search(ctx context.Context, params types.ResourceSearchParams) ([]*types.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE (title ILIKE $1 OR content ILIKE $1 OR tags ? lower($2))
			AND ($3 = '' OR category = $3)
			AND ($4 = '' OR age_range = $4)
		ORDER BY (title ILIKE $1) DESC, created_at DESC
		LIMIT $5`

	pattern := "%" + params.Query + "%"
	rows, err := s.db.Query(ctx, query, pattern, params.Query, string(params.Category), params.AgeRange, params.Limit)
	if err != nil {
		return nil, err
	}
	return s.collectResources(rows)
}

// GetResource retrieves a library entry by ID.
func (s *ResourceStore) GetResource(ctx context.Context, id string) (*types.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE id = $1`

	return scanResource(s.db.QueryRow(ctx, query, id))
}

// SaveResource records a bookmark. Saving an already saved resource returns
// the existing row with its original saved_at.
func (s *ResourceStore) SaveResource(ctx context.Context, userID, resourceID string) (*types.SavedResource, error) {
	query := `
		INSERT INTO user_saved_resources (user_id, resource_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, resource_id) DO UPDATE
		SET user_id = user_saved_resources.user_id
		RETURNING id, user_id, resource_id, saved_at`

	saved := &types.SavedResource{}
	err := s.db.QueryRow(ctx, query, userID, resourceID).Scan(
		&saved.ID,
		&saved.UserID,
		&saved.ResourceID,
		&saved.SavedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return saved, nil
}

// ListSaved returns the user's bookmarks joined with their resources, most
// recently saved first.
func (s *ResourceStore) ListSaved(ctx context.Context, userID string, category types.ResourceCategory) ([]*types.SavedResource, error) {
	query := `
		SELECT usr.id, usr.user_id, usr.resource_id, usr.saved_at,
			r.id, r.title, r.content, r.category, r.age_range, r.tags, r.created_at
		FROM user_saved_resources usr
		JOIN resources r ON r.id = usr.resource_id
		WHERE usr.user_id = $1 AND ($2 = '' OR r.category = $2)
		ORDER BY usr.saved_at DESC`

	rows, err := s.db.Query(ctx, query, userID, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved []*types.SavedResource
	for rows.Next() {
		sr := &types.SavedResource{Resource: &types.Resource{}}
		err := rows.Scan(
			&sr.ID,
			&sr.UserID,
			&sr.ResourceID,
			&sr.SavedAt,
			&sr.Resource.ID,
			&sr.Resource.Title,
			&sr.Resource.Content,
			&sr.Resource.Category,
			&sr.Resource.AgeRange,
			&sr.Resource.Tags,
			&sr.Resource.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		saved = append(saved, sr)
	}
	return saved, rows.Err()
}

// CountSaved returns the user's all-time saved resource count.
func (s *ResourceStore) CountSaved(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_saved_resources
		WHERE user_id = $1`

	var count int
	if err := s.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UnsaveResource removes a bookmark.
func (s *ResourceStore) UnsaveResource(ctx context.Context, userID, resourceID string) error {
	query := `
		DELETE FROM user_saved_resources
		WHERE user_id = $1 AND resource_id = $2`

	result, err := s.db.Exec(ctx, query, userID, resourceID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
