package web

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"pannel_backoffice/internal/client"
	"pannel_backoffice/internal/common"
	"pannel_backoffice/internal/global"
	"pannel_backoffice/internal/logger"
	"pannel_backoffice/internal/models"
	"pannel_backoffice/internal/resources"
)

// AuthHandler owns the session lifecycle endpoints.
type AuthHandler struct {
	manager    *Manager
	backendURL string
	timeout    time.Duration
}

// NewAuthHandler builds the handler bound to the session registry.
func NewAuthHandler(m *Manager, backendURL string, timeout time.Duration) *AuthHandler {
	return &AuthHandler{manager: m, backendURL: backendURL, timeout: timeout}
}

// HandleLogin authenticates against the backend, opens a session and sets
// the auth cookie.
func (h *AuthHandler) HandleLogin(c fiber.Ctx) error {
	var payload models.LoginPayload
	if err := c.Bind().Body(&payload); err != nil {
		return HandleErrorResponse(c, common.NewError(
			common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, nil))
	}
	if err := global.Validate.Struct(payload); err != nil {
		return HandleErrorResponse(c, common.NewError(
			common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, nil))
	}

	// the login call is the one request that goes out unauthenticated
	anon := client.New(client.Options{BaseURL: h.backendURL, Timeout: h.timeout})
	login, err := resources.NewUsers(anon).Login(c.Context(), payload)
	if err != nil {
		logger.WithRequest(c).WithField("email", payload.Email).Warn("login rejected")
		return HandleErrorResponse(c, err)
	}

	s := h.manager.Open(*login)
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookie,
		Value:    s.Token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	logger.LogAction("login", "session", login.Data.Email, c, nil)
	return HandleResponse(c, fiber.Map{
		"user": login.Data,
		"role": s.Role(),
	}, nil)
}

// HandleLogout closes the session and expires the cookie.
func (h *AuthHandler) HandleLogout(c fiber.Ctx) error {
	s := sessionFrom(c)
	h.manager.Remove(s.Token)
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Unix(0, 0),
	})
	logger.LogAction("logout", "session", s.Profile.Data.Email, c, nil)
	return HandleResponse(c, nil, nil)
}

// HandleMe returns the authenticated operator's backend profile.
func (h *AuthHandler) HandleMe(c fiber.Ctx) error {
	s := sessionFrom(c)
	me, err := s.Catalog.Users.Me(c.Context())
	if err != nil {
		return HandleErrorResponse(c, err)
	}
	return HandleResponse(c, me, nil)
}
