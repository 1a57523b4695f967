package services

import (
	"context"
	"errors"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/internal/auth"
	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/LittleSteps/little-steps-backend/types"
)

// AuthService implements registration, login and token refresh.
type AuthService struct {
	users  store.UserStore
	issuer *auth.TokenIssuer
}

func NewAuthService(users store.UserStore, issuer *auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// Register creates the account with a bcrypt-hashed password and an empty
// profile, then signs the user in.
func (s *AuthService) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error) {
	log := logger.GetLogger()

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalServerError("Failed to process password")
	}

	user, err := s.users.CreateUserWithProfile(ctx, &types.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already registered", "")
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	log.Infow("User registered", "userId", user.ID, "email", logger.MaskEmail(user.Email))

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{User: *user, Tokens: *tokens}, nil
}

// Login verifies the credentials and returns a fresh token pair. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	log := logger.GetLogger()

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid_credentials", "Invalid email or password")
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		log.Warnw("Failed login attempt", "email", logger.MaskEmail(req.Email))
		return nil, apperrors.Unauthorized("invalid_credentials", "Invalid email or password")
	}

	if !user.IsActive {
		return nil, apperrors.ValidationFailed("Account is inactive", "")
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{User: *user, Tokens: *tokens}, nil
}

// Refresh verifies the refresh token and issues a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*types.TokenPair, error) {
	userID, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid_refresh_token", "Invalid or expired refresh token")
	}

	// The account may have been deactivated since the token was issued.
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid_refresh_token", "Invalid or expired refresh token")
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("account_inactive", "Account is inactive")
	}

	access, err := s.issuer.IssueAccessToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalServerError("Failed to issue access token")
	}

	return &types.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func (s *AuthService) issueTokens(userID string) (*types.TokenPair, error) {
	access, err := s.issuer.IssueAccessToken(userID)
	if err != nil {
		return nil, apperrors.InternalServerError("Failed to issue access token")
	}
	refresh, err := s.issuer.IssueRefreshToken(userID)
	if err != nil {
		return nil, apperrors.InternalServerError("Failed to issue refresh token")
	}
	return &types.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
