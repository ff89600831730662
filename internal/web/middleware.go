package web

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"pannel_backoffice/internal/common"
)

// AuthCookie is the cookie carrying the access token.
const AuthCookie = "auth-token"

const (
	localSession   = "session"
	localUserEmail = "userEmail"
)

// sessionFrom returns the session the guard middleware attached.
func sessionFrom(c fiber.Ctx) *Session {
	s, _ := c.Locals(localSession).(*Session)
	return s
}

// RequireSession guards authenticated routes. API calls without a live
// session get a 401 envelope; page navigations are redirected to the
// login screen, mirroring what an expired token does mid-flight.
func RequireSession(m *Manager) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(AuthCookie)
		if token != "" {
			if s, ok := m.Get(token); ok {
				c.Locals(localSession, s)
				c.Locals(localUserEmail, s.Profile.Data.Email)
				return c.Next()
			}
		}
		if isAPIRequest(c) {
			return HandleErrorResponse(c, common.ErrTokenMissing)
		}
		return c.Redirect().Status(fiber.StatusFound).To("/auth/login")
	}
}

// RedirectIfAuthenticated sends already-logged-in operators from the login
// screen straight to the dashboard.
func RedirectIfAuthenticated(m *Manager) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token := c.Cookies(AuthCookie); token != "" {
			if _, ok := m.Get(token); ok {
				return c.Redirect().Status(fiber.StatusFound).To("/dashboard")
			}
		}
		return c.Next()
	}
}

func isAPIRequest(c fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}
