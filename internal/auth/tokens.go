package auth

import (
	"fmt"
	"time"

	"github.com/LittleSteps/little-steps-backend/config"
	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "kind" claim. The auth middleware only accepts
// access tokens; the refresh endpoint only accepts refresh tokens.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// Claims are the JWT claims issued by this service.
type Claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the service's own HS256 tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(cfg *config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(cfg.JWTSecretKey),
		accessTTL:  time.Duration(cfg.AccessTokenMinutes) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshTokenDays) * 24 * time.Hour,
	}
}

// IssueAccessToken returns a signed access token for the user.
func (i *TokenIssuer) IssueAccessToken(userID string) (string, error) {
	return i.sign(userID, TokenKindAccess, i.accessTTL)
}

// IssueRefreshToken returns a signed refresh token for the user.
func (i *TokenIssuer) IssueRefreshToken(userID string) (string, error) {
	return i.sign(userID, TokenKindRefresh, i.refreshTTL)
}

func (i *TokenIssuer) sign(userID, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", kind, err)
	}
	return signed, nil
}

// VerifyRefreshToken validates a refresh token's signature, expiry and kind,
// returning the subject user ID.
func (i *TokenIssuer) VerifyRefreshToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return i.secret, nil
		})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return "", fmt.Errorf("invalid refresh token claims")
	}
	if claims.Kind != TokenKindRefresh {
		return "", fmt.Errorf("token is not a refresh token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("refresh token missing subject")
	}
	return claims.Subject, nil
}
