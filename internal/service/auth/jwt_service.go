// Package auth provides token issuance and password verification services.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given username.
	// The username is carried in the subject claim.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, username string) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns the claims if the token is valid, or an error if validation
	// fails (expired, invalid signature, missing subject, etc.).
	// Validation is a pure function of the token, the signing key and the clock.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated content of an access token.
type Claims struct {
	// Username is the subject the token was issued for.
	Username string

	// IssuedAt and ExpiresAt are the standard time claims.
	IssuedAt  time.Time
	ExpiresAt time.Time

	// ID is the unique token identifier (jti claim).
	ID string
}
