package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ratehub/internal/domain/entity"
)

// Claims defines the custom claims embedded in a session token.
type Claims struct {
	UserID uuid.UUID
	Role   entity.Role
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating session tokens.
// Sessions are stateless: expiry is the only bound on an issued token's lifetime.
type TokenService interface {
	// Issue creates a signed session token for the given user and role.
	Issue(userID uuid.UUID, role entity.Role) (string, error)

	// Validate checks a token's signature and expiry and returns its claims.
	// Any mutation of the token payload invalidates the signature.
	Validate(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured session lifetime.
	AccessTokenDuration() time.Duration
}
