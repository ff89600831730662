package web

import (
	"github.com/gofiber/fiber/v3"

	"pannel_backoffice/internal/common"
	"pannel_backoffice/internal/global"
	"pannel_backoffice/internal/models"
)

// registerSettings mounts the settings page endpoints. Settings are held in
// the session only: thresholds and recipients reset to their defaults when
// the session expires, nothing reaches the backend.
func registerSettings(grp fiber.Router) {
	grp.Get("/settings", func(c fiber.Ctx) error {
		s := sessionFrom(c)
		return HandleResponse(c, s.Settings(), nil)
	})

	grp.Put("/settings", func(c fiber.Ctx) error {
		s := sessionFrom(c)
		var payload models.SettingsPayload
		if err := c.Bind().Body(&payload); err != nil {
			return HandleErrorResponse(c, bindError())
		}
		if err := global.Validate.Struct(payload); err != nil {
			return HandleErrorResponse(c, common.NewError(
				common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, nil))
		}
		if payload.EmailAlertRecipients == nil {
			payload.EmailAlertRecipients = []string{}
		}
		s.SetSettings(payload)
		return HandleResponse(c, s.Settings(), nil)
	})
}
