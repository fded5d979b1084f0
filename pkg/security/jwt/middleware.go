package jwt

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/crystalices/backend/pkg/auth"
)

const sessionKey = "session"

// Session is the identity attached to an authenticated request.
type Session struct {
	UserID string
	Email  string
	Name   string
	Role   auth.Role
}

// NewAuthMiddleware returns a Fiber middleware that validates a session JWT.
// On success the Session is stored in c.Locals and also exposed as "userId" and "role".
func NewAuthMiddleware(tokens auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return deny(c, http.StatusUnauthorized, "missing Authorization header")
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		tokenStr := strings.TrimSpace(authHeader)
		if parts := strings.SplitN(tokenStr, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = strings.TrimSpace(parts[1])
		}
		if tokenStr == "" {
			return deny(c, http.StatusUnauthorized, "empty token")
		}
		claims, err := tokens.Verify(c.Context(), auth.TokenSession, tokenStr)
		if err != nil {
			return deny(c, http.StatusUnauthorized, "invalid or expired token")
		}
		s := Session{UserID: claims.UserID, Email: claims.Email, Name: claims.Name, Role: claims.Role}
		c.Locals(sessionKey, s)
		c.Locals("userId", s.UserID)
		c.Locals("role", string(s.Role))
		return c.Next()
	}
}

// RequireRoles rejects requests whose session role is not listed.
// It must run after NewAuthMiddleware.
func RequireRoles(roles ...auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := SessionFrom(c)
		if !ok {
			return deny(c, http.StatusUnauthorized, "authentication required")
		}
		if !slices.Contains(roles, s.Role) {
			return deny(c, http.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// SessionFrom returns the session stored by NewAuthMiddleware.
func SessionFrom(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(sessionKey).(Session)
	return s, ok
}

func deny(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}
