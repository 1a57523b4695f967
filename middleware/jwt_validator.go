package middleware

import (
	"errors"
	"fmt"

	"github.com/LittleSteps/little-steps-backend/config"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	// ErrTokenExpired is returned when JWT validation fails due to expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for general token validation failures (signature, format).
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenMissingClaim is returned if a required claim (like 'sub') is missing.
	ErrTokenMissingClaim = errors.New("token missing required claim")
	// ErrTokenWrongKind is returned when a refresh token is presented on an
	// endpoint that requires an access token.
	ErrTokenWrongKind = errors.New("token is not an access token")
)

// Validator defines the interface for validating tokens.
type Validator interface {
	Validate(tokenString string) (string, error)
}

// JWTValidator validates HS256 access tokens issued by this service.
type JWTValidator struct {
	secret []byte
}

var _ Validator = (*JWTValidator)(nil)

// NewJWTValidator creates a validator instance using application configuration.
func NewJWTValidator(cfg *config.AuthConfig) (*JWTValidator, error) {
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT validator configuration error: JWT_SECRET_KEY must be set")
	}
	return &JWTValidator{secret: []byte(cfg.JWTSecretKey)}, nil
}

// Validate parses and validates the token, checking signature, expiry and
// the token kind. Returns the userID (subject claim) on success.
func (v *JWTValidator) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse([]byte(tokenString),
		jwt.WithKey(jwa.HS256, v.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	kind, ok := token.Get("kind")
	if !ok {
		return "", fmt.Errorf("%w: kind", ErrTokenMissingClaim)
	}
	if kind != "access" {
		return "", ErrTokenWrongKind
	}

	userID := token.Subject()
	if userID == "" {
		return "", fmt.Errorf("%w: sub", ErrTokenMissingClaim)
	}
	return userID, nil
}
