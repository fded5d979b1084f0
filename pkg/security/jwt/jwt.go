package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crystalices/backend/pkg/auth"
)

// Service issues and checks HS256 tokens for both sessions and email verification.
// It implements auth.TokenService.
type Service struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewService(secret, issuer string) *Service {
	return &Service{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Claims includes the registered claims plus the token purpose and session identity.
type Claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Role    string `json:"role,omitempty"`
}

func (s *Service) Issue(_ context.Context, kind auth.TokenKind, c auth.TokenClaims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("jwt: ttl must be positive")
	}
	switch kind {
	case auth.TokenSession:
		if c.UserID == "" {
			return "", errors.New("jwt: session token needs a subject")
		}
	case auth.TokenVerification:
		if c.Email == "" {
			return "", errors.New("jwt: verification token needs an email")
		}
	default:
		return "", fmt.Errorf("jwt: unknown token kind %q", kind)
	}

	now := s.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Purpose: string(kind),
		Email:   c.Email,
		Name:    c.Name,
		Role:    string(c.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) Verify(_ context.Context, kind auth.TokenKind, tokenStr string) (auth.TokenClaims, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return auth.TokenClaims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if claims.Purpose != string(kind) {
		return auth.TokenClaims{}, fmt.Errorf("%w: purpose %q", auth.ErrInvalidToken, claims.Purpose)
	}
	out := auth.TokenClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   auth.Role(claims.Role),
	}
	switch kind {
	case auth.TokenSession:
		if out.UserID == "" || !out.Role.Valid() {
			return auth.TokenClaims{}, fmt.Errorf("%w: incomplete session claims", auth.ErrInvalidToken)
		}
	case auth.TokenVerification:
		if out.Email == "" {
			return auth.TokenClaims{}, fmt.Errorf("%w: missing email", auth.ErrInvalidToken)
		}
	}
	return out, nil
}

func (s *Service) parse(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
