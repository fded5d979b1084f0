package jwt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystalices/backend/pkg/auth"
)

func sessionClaims(role auth.Role) auth.TokenClaims {
	return auth.TokenClaims{UserID: "5f0c6a4e-1d55-4c58-9b4e-6b1a0d0e2b11", Email: "a@x.io", Name: "Alice", Role: role}
}

func TestIssueAndVerifySession(t *testing.T) {
	t.Parallel()
	s := NewService("secret", "crystal")
	ctx := context.Background()

	tok, err := s.Issue(ctx, auth.TokenSession, sessionClaims(auth.RoleAdmin), time.Hour)
	require.NoError(t, err)

	got, err := s.Verify(ctx, auth.TokenSession, tok)
	require.NoError(t, err)
	assert.Equal(t, sessionClaims(auth.RoleAdmin), got)
}

func TestVerificationTokenExpires(t *testing.T) {
	t.Parallel()
	s := NewService("secret", "crystal")
	ctx := context.Background()

	issuedAt := time.Now().Add(-16 * time.Minute)
	s.now = func() time.Time { return issuedAt }
	tok, err := s.Issue(ctx, auth.TokenVerification, auth.TokenClaims{Email: "a@x.io"}, 15*time.Minute)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(ctx, auth.TokenVerification, tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	s.now = func() time.Time { return issuedAt.Add(14 * time.Minute) }
	got, err := s.Verify(ctx, auth.TokenVerification, tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", got.Email)
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewService("secret", "crystal")

	verification, err := s.Issue(ctx, auth.TokenVerification, auth.TokenClaims{Email: "a@x.io"}, time.Minute)
	require.NoError(t, err)
	session, err := s.Issue(ctx, auth.TokenSession, sessionClaims(auth.RoleClient), time.Minute)
	require.NoError(t, err)
	foreign, err := NewService("other-secret", "crystal").Issue(ctx, auth.TokenSession, sessionClaims(auth.RoleClient), time.Minute)
	require.NoError(t, err)
	otherIssuer, err := NewService("secret", "someone-else").Issue(ctx, auth.TokenSession, sessionClaims(auth.RoleClient), time.Minute)
	require.NoError(t, err)
	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{Purpose: "session"}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := []struct {
		name  string
		kind  auth.TokenKind
		token string
	}{
		{"verification used as session", auth.TokenSession, verification},
		{"session used as verification", auth.TokenVerification, session},
		{"wrong secret", auth.TokenSession, foreign},
		{"wrong issuer", auth.TokenSession, otherIssuer},
		{"alg none", auth.TokenSession, none},
		{"garbage", auth.TokenSession, "not-a-jwt"},
		{"empty", auth.TokenVerification, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Verify(ctx, tc.kind, tc.token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestIssueValidatesInput(t *testing.T) {
	t.Parallel()
	s := NewService("secret", "")
	ctx := context.Background()

	_, err := s.Issue(ctx, auth.TokenSession, auth.TokenClaims{}, time.Minute)
	assert.Error(t, err)
	_, err = s.Issue(ctx, auth.TokenVerification, auth.TokenClaims{}, time.Minute)
	assert.Error(t, err)
	_, err = s.Issue(ctx, auth.TokenVerification, auth.TokenClaims{Email: "a@x.io"}, 0)
	assert.Error(t, err)
	_, err = s.Issue(ctx, "refresh", auth.TokenClaims{Email: "a@x.io"}, time.Minute)
	assert.Error(t, err)
}

func newProtectedApp(s *Service, roles ...auth.Role) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{NewAuthMiddleware(s)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		sess, _ := SessionFrom(c)
		return c.SendString(sess.UserID + "|" + string(sess.Role))
	})
	app.Get("/p", handlers...)
	return app
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	s := NewService("secret", "crystal")
	ctx := context.Background()
	client, err := s.Issue(ctx, auth.TokenSession, sessionClaims(auth.RoleClient), time.Minute)
	require.NoError(t, err)
	admin, err := s.Issue(ctx, auth.TokenSession, sessionClaims(auth.RoleAdmin), time.Minute)
	require.NoError(t, err)
	verification, err := s.Issue(ctx, auth.TokenVerification, auth.TokenClaims{Email: "a@x.io"}, time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		roles  []auth.Role
		status int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"bearer", "Bearer " + client, nil, http.StatusOK},
		{"raw token", client, nil, http.StatusOK},
		{"verification token rejected", "Bearer " + verification, nil, http.StatusUnauthorized},
		{"client on admin route", "Bearer " + client, []auth.Role{auth.RoleAdmin}, http.StatusForbidden},
		{"admin on admin route", "Bearer " + admin, []auth.Role{auth.RoleAdmin}, http.StatusOK},
		{"admin on staff route", "Bearer " + admin, []auth.Role{auth.RoleStaff, auth.RoleAdmin}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newProtectedApp(s, tc.roles...)
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.status == http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), "5f0c6a4e-1d55-4c58-9b4e-6b1a0d0e2b11|")
			}
		})
	}
}
