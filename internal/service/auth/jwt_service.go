package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and validates the two token kinds the API uses: a
// short-lived access token sent with every request and a longer-lived
// refresh token exchanged for a fresh pair at the refresh endpoint.
type JWTService interface {
	// GenerateToken signs an access token for the given user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies an access token and returns its claims.
	// Fails with ErrExpiredToken or ErrInvalidToken; a refresh token
	// presented here fails with ErrWrongTokenType.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken signs a refresh token for the given user.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken verifies a refresh token and returns its
	// claims. Fails with ErrExpiredRefreshToken or ErrInvalidRefreshToken;
	// an access token presented here fails with ErrWrongTokenType.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded token payload handed back to callers after
// validation.
type Claims struct {
	// UserID identifies the account the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType is "access" or "refresh". Validation rejects tokens
	// presented to the wrong endpoint based on this field.
	TokenType string `json:"type,omitempty"`

	// Registered JWT claims surfaced for callers that need them.
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
