package auth

import (
	"context"
	"time"
)

// TokenKind separates session tokens from email verification tokens.
// A token of one kind is never accepted as the other.
type TokenKind string

const (
	TokenSession      TokenKind = "session"
	TokenVerification TokenKind = "verification"
)

// TokenClaims is the payload carried by a token.
// Verification tokens only need Email.
type TokenClaims struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

// TokenService abstracts token creation and checking (e.g., JWT).
// Verify returns ErrInvalidToken for anything that is not a live token of the given kind.
type TokenService interface {
	Issue(ctx context.Context, kind TokenKind, claims TokenClaims, ttl time.Duration) (string, error)
	Verify(ctx context.Context, kind TokenKind, token string) (TokenClaims, error)
}
