package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/LittleSteps/little-steps-backend/types"
)

// ConversationStore implements the store.ConversationStore interface using
// PostgreSQL.
type ConversationStore struct {
	db DB
}

// NewConversationStore creates a new ConversationStore instance.
func NewConversationStore(db DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// CreateConversation persists one chat exchange and returns its ID.
func (s *ConversationStore) CreateConversation(ctx context.Context, conv *types.Conversation) (string, error) {
	query := `
		INSERT INTO conversations (user_id, message, response, context)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id string
	err := s.db.QueryRow(ctx, query,
		conv.UserID,
		conv.Message,
		conv.Response,
		conv.Context,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating conversation: %w", err)
	}
	return id, nil
}

// ListRecent returns the newest conversations first.
func (s *ConversationStore) ListRecent(ctx context.Context, userID string, limit int) ([]*types.Conversation, error) {
	query := `
		SELECT id, user_id, message, response, context, created_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*types.Conversation
	for rows.Next() {
		conv := &types.Conversation{}
		err := rows.Scan(
			&conv.ID,
			&conv.UserID,
			&conv.Message,
			&conv.Response,
			&conv.Context,
			&conv.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

// DeleteAll removes the user's entire chat history and returns the number of
// rows deleted.
func (s *ConversationStore) DeleteAll(ctx context.Context, userID string) (int64, error) {
	query := `
		DELETE FROM conversations
		WHERE user_id = $1`

	result, err := s.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// CountByUser returns the user's total conversation count.
func (s *ConversationStore) CountByUser(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM conversations
		WHERE user_id = $1`

	var count int
	if err := s.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountBetween counts conversations created in [from, to).
func (s *ConversationStore) CountBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM conversations
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3`

	var count int
	if err := s.db.QueryRow(ctx, query, userID, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
