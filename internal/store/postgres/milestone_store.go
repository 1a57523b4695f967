package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/jackc/pgx/v5"
)

// MilestoneStore implements the store.MilestoneStore interface using
// PostgreSQL.
type MilestoneStore struct {
	db DB
}

// NewMilestoneStore creates a new MilestoneStore instance.
func NewMilestoneStore(db DB) *MilestoneStore {
	return &MilestoneStore{db: db}
}

const milestoneColumns = `id, title, description, category, age_range_start, age_range_end, created_at`

func scanMilestone(row pgx.Row) (*types.Milestone, error) {
	m := &types.Milestone{}
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.Category,
		&m.AgeRangeStart,
		&m.AgeRangeEnd,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListMilestones returns catalog entries filtered by category and age in
// days. An empty category or negative age disables the respective filter.
// Age ranges are inclusive on both ends.
func (s *MilestoneStore) ListMilestones(ctx context.Context, category types.MilestoneCategory, ageDays int) ([]*types.Milestone, error) {
	query := `
		SELECT ` + milestoneColumns + `
		FROM milestones
		WHERE ($1 = '' OR category = $1)
			AND ($2 < 0 OR (age_range_start <= $2 AND age_range_end >= $2))
		ORDER BY age_range_start, title`

	rows, err := s.db.Query(ctx, query, string(category), ageDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []*types.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// GetMilestone retrieves a catalog entry by ID.
func (s *MilestoneStore) GetMilestone(ctx context.Context, id string) (*types.Milestone, error) {
	query := `
		SELECT ` + milestoneColumns + `
		FROM milestones
		WHERE id = $1`

	return scanMilestone(s.db.QueryRow(ctx, query, id))
}

// ListUserMilestones returns the user's tracked milestones joined with the
// catalog, newest tracking rows first.
func (s *MilestoneStore) ListUserMilestones(ctx context.Context, userID string, completedOnly bool) ([]*types.UserMilestone, error) {
	query := `
		SELECT um.id, um.user_id, um.milestone_id, um.completed, um.completed_at,
			um.notes, um.created_at,
			m.id, m.title, m.description, m.category, m.age_range_start,
			m.age_range_end, m.created_at
		FROM user_milestones um
		JOIN milestones m ON m.id = um.milestone_id
		WHERE um.user_id = $1 AND ($2 = false OR um.completed)
		ORDER BY um.created_at DESC`

	rows, err := s.db.Query(ctx, query, userID, completedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*types.UserMilestone
	for rows.Next() {
		um := &types.UserMilestone{Milestone: &types.Milestone{}}
		err := rows.Scan(
			&um.ID,
			&um.UserID,
			&um.MilestoneID,
			&um.Completed,
			&um.CompletedAt,
			&um.Notes,
			&um.CreatedAt,
			&um.Milestone.ID,
			&um.Milestone.Title,
			&um.Milestone.Description,
			&um.Milestone.Category,
			&um.Milestone.AgeRangeStart,
			&um.Milestone.AgeRangeEnd,
			&um.Milestone.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, um)
	}
	return result, rows.Err()
}

// UpsertCompletion inserts or updates the user's completion row. A repeat of
// the same state is a no-op for completed_at: the original stamp survives.
// The CTE reads the pre-statement row so the false-to-true transition can be
// reported to the caller.
func (s *MilestoneStore) UpsertCompletion(ctx context.Context, userID, milestoneID string, completed bool, notes *string) (*types.UserMilestone, bool, error) {
	query := `
		WITH prev AS (
			SELECT completed FROM user_milestones
			WHERE user_id = $1 AND milestone_id = $2
		)
		INSERT INTO user_milestones (user_id, milestone_id, completed, completed_at, notes)
		VALUES ($1, $2, $3, CASE WHEN $3 THEN NOW() END, COALESCE($4, ''))
		ON CONFLICT (user_id, milestone_id) DO UPDATE
		SET completed = EXCLUDED.completed,
			completed_at = CASE
				WHEN EXCLUDED.completed AND user_milestones.completed_at IS NULL THEN NOW()
				WHEN NOT EXCLUDED.completed THEN NULL
				ELSE user_milestones.completed_at
			END,
			notes = COALESCE($4, user_milestones.notes)
		RETURNING id, user_id, milestone_id, completed, completed_at, notes, created_at,
			(SELECT COALESCE(bool_or(completed), false) FROM prev)`

	um := &types.UserMilestone{}
	var wasCompleted bool
	err := s.db.QueryRow(ctx, query, userID, milestoneID, completed, notes).Scan(
		&um.ID,
		&um.UserID,
		&um.MilestoneID,
		&um.Completed,
		&um.CompletedAt,
		&um.Notes,
		&um.CreatedAt,
		&wasCompleted,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, false, store.ErrNotFound
		}
		return nil, false, err
	}

	newlyCompleted := um.Completed && !wasCompleted
	return um, newlyCompleted, nil
}

// CountCompleted returns the user's all-time completed milestone count.
func (s *MilestoneStore) CountCompleted(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_milestones
		WHERE user_id = $1 AND completed`

	var count int
	if err := s.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListCompletionTimes returns completed_at stamps at or after since.
func (s *MilestoneStore) ListCompletionTimes(ctx context.Context, userID string, since time.Time) ([]time.Time, error) {
	query := `
		SELECT completed_at
		FROM user_milestones
		WHERE user_id = $1 AND completed AND completed_at >= $2
		ORDER BY completed_at`

	rows, err := s.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// ListRecentCompletions returns the most recently completed milestones joined
// with their catalog entries, newest first.
func (s *MilestoneStore) ListRecentCompletions(ctx context.Context, userID string, limit int) ([]*types.UserMilestone, error) {
	query := `
		SELECT um.id, um.user_id, um.milestone_id, um.completed, um.completed_at,
			um.notes, um.created_at,
			m.id, m.title, m.description, m.category, m.age_range_start,
			m.age_range_end, m.created_at
		FROM user_milestones um
		JOIN milestones m ON m.id = um.milestone_id
		WHERE um.user_id = $1 AND um.completed
		ORDER BY um.completed_at DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*types.UserMilestone
	for rows.Next() {
		um := &types.UserMilestone{Milestone: &types.Milestone{}}
		err := rows.Scan(
			&um.ID,
			&um.UserID,
			&um.MilestoneID,
			&um.Completed,
			&um.CompletedAt,
			&um.Notes,
			&um.CreatedAt,
			&um.Milestone.ID,
			&um.Milestone.Title,
			&um.Milestone.Description,
			&um.Milestone.Category,
			&um.Milestone.AgeRangeStart,
			&um.Milestone.AgeRangeEnd,
			&um.Milestone.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, um)
	}
	return result, rows.Err()
}
