package auth

import (
	"testing"
	"time"

	"github.com/LittleSteps/little-steps-backend/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer(&config.AuthConfig{
		JWTSecretKey:       "0123456789abcdef0123456789abcdef",
		AccessTokenMinutes: 15,
		RefreshTokenDays:   7,
	})
}

func TestIssueAndVerifyRefreshToken(t *testing.T) {
	issuer := testIssuer()

	refresh, err := issuer.IssueRefreshToken("user-123")
	require.NoError(t, err)

	userID, err := issuer.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyRefreshToken_RejectsAccessToken(t *testing.T) {
	issuer := testIssuer()

	access, err := issuer.IssueAccessToken("user-123")
	require.NoError(t, err)

	_, err = issuer.VerifyRefreshToken(access)
	assert.Error(t, err)
}

func TestVerifyRefreshToken_RejectsWrongSecret(t *testing.T) {
	issuer := testIssuer()
	other := NewTokenIssuer(&config.AuthConfig{
		JWTSecretKey:       "ffffffffffffffffffffffffffffffff",
		AccessTokenMinutes: 15,
		RefreshTokenDays:   7,
	})

	refresh, err := other.IssueRefreshToken("user-123")
	require.NoError(t, err)

	_, err = issuer.VerifyRefreshToken(refresh)
	assert.Error(t, err)
}

func TestVerifyRefreshToken_RejectsExpired(t *testing.T) {
	issuer := testIssuer()

	claims := Claims{
		Kind: TokenKindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(issuer.secret)
	require.NoError(t, err)

	_, err = issuer.VerifyRefreshToken(signed)
	assert.Error(t, err)
}

func TestAccessTokenCarriesKindClaim(t *testing.T) {
	issuer := testIssuer()

	access, err := issuer.IssueAccessToken("user-123")
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(access, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return issuer.secret, nil
		})
	require.NoError(t, err)

	claims := parsed.Claims.(*Claims)
	assert.Equal(t, TokenKindAccess, claims.Kind)
	assert.Equal(t, "user-123", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}
