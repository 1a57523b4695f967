package postgres

import (
	"context"

	"github.com/LittleSteps/little-steps-backend/types"
)

// TipStore implements the store.TipStore interface using PostgreSQL.
type TipStore struct {
	db DB
}

// NewTipStore creates a new TipStore instance.
func NewTipStore(db DB) *TipStore {
	return &TipStore{db: db}
}

// ListTips returns tips whose age_range is one of ageRanges, oldest first so
// the day-index selection stays stable as the catalog grows.
func (s *TipStore) ListTips(ctx context.Context, ageRanges []string) ([]*types.DailyTip, error) {
	query := `
		SELECT id, content, category, age_range, created_at
		FROM daily_tips
		WHERE age_range = ANY($1)
		ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, query, ageRanges)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tips []*types.DailyTip
	for rows.Next() {
		tip := &types.DailyTip{}
		err := rows.Scan(
			&tip.ID,
			&tip.Content,
			&tip.Category,
			&tip.AgeRange,
			&tip.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tips = append(tips, tip)
	}
	return tips, rows.Err()
}
