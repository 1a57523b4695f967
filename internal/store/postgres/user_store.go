package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/jackc/pgx/v5"
)

// UserStore implements the store.UserStore interface using PostgreSQL.
type UserStore struct {
	db DB
}

// NewUserStore creates a new UserStore instance.
func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, name, password_hash, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*types.User, error) {
	user := &types.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateUserWithProfile inserts the user and an empty profile row in one
// transaction so a registered account always has a profile.
func (s *UserStore) CreateUserWithProfile(ctx context.Context, user *types.User) (*types.User, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	created, err := scanUser(tx.QueryRow(ctx, query, user.Email, user.Name, user.PasswordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicate
		}
		return nil, err
	}

	profileQuery := `
		INSERT INTO user_profiles (user_id)
		VALUES ($1)`

	if _, err := tx.Exec(ctx, profileQuery, created.ID); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing registration: %w", err)
	}

	return created, nil
}

// GetUserByID retrieves a user by primary key.
func (s *UserStore) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	return scanUser(s.db.QueryRow(ctx, query, id))
}

// GetUserByEmail retrieves a user by email address.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1`

	return scanUser(s.db.QueryRow(ctx, query, email))
}

// UpdateUser applies a partial update to name and email.
func (s *UserStore) UpdateUser(ctx context.Context, id string, update *types.UserUpdate) (*types.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
			email = COALESCE($2, email),
			updated_at = NOW()
		WHERE id = $3
		RETURNING ` + userColumns

	user, err := scanUser(s.db.QueryRow(ctx, query, update.Name, update.Email, id))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicate
		}
		return nil, err
	}
	return user, nil
}

const profileColumns = `id, user_id, baby_birth_date, parenting_stage, preferences, timezone, created_at, updated_at`

func scanProfile(row pgx.Row) (*types.UserProfile, error) {
	profile := &types.UserProfile{}
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.BabyBirthDate,
		&profile.ParentingStage,
		&profile.Preferences,
		&profile.Timezone,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetProfile retrieves the profile row belonging to a user.
func (s *UserStore) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM user_profiles
		WHERE user_id = $1`

	return scanProfile(s.db.QueryRow(ctx, query, userID))
}

// UpdateProfileDetails applies a partial update to the profile row.
func (s *UserStore) UpdateProfileDetails(ctx context.Context, userID string, update *types.ProfileDetailsUpdate) (*types.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET baby_birth_date = COALESCE($1, baby_birth_date),
			parenting_stage = COALESCE($2, parenting_stage),
			preferences = COALESCE($3, preferences),
			timezone = COALESCE($4, timezone),
			updated_at = NOW()
		WHERE user_id = $5
		RETURNING ` + profileColumns

	return scanProfile(s.db.QueryRow(ctx, query,
		update.BabyBirthDate,
		update.ParentingStage,
		update.Preferences,
		update.Timezone,
		userID,
	))
}
