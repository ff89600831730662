package web

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"pannel_backoffice/internal/controller"
	"pannel_backoffice/internal/forms"
	"pannel_backoffice/internal/models"
)

// Register mounts the whole route table on the app: session lifecycle,
// the page guards, the dashboard and one endpoint set per entity.
func Register(app *fiber.App, m *Manager, backendURL string, timeout time.Duration) {
	auth := NewAuthHandler(m, backendURL, timeout)

	app.Post("/api/auth/login", auth.HandleLogin)

	loginPage := app.Group("/auth")
	loginPage.Use(RedirectIfAuthenticated(m))
	loginPage.Get("/login", func(c fiber.Ctx) error {
		return HandleResponse(c, fiber.Map{"page": "login"}, nil)
	})

	// everything below requires a live session
	guard := RequireSession(m)

	app.Get("/", func(c fiber.Ctx) error {
		if token := c.Cookies(AuthCookie); token != "" {
			if _, ok := m.Get(token); ok {
				return c.Redirect().Status(fiber.StatusFound).To("/dashboard")
			}
		}
		return c.Redirect().Status(fiber.StatusFound).To("/auth/login")
	})

	dashboard := app.Group("/dashboard")
	dashboard.Use(guard)
	dashboard.Get("", func(c fiber.Ctx) error {
		return HandleResponse(c, fiber.Map{"page": "dashboard"}, nil)
	})

	api := app.Group("/api")
	api.Use(guard)
	api.Post("/auth/logout", auth.HandleLogout)
	api.Get("/auth/me", auth.HandleMe)
	api.Get("/dashboard", HandleDashboard)

	registerEntity(api, "/panels",
		func(s *Session) *controller.ListController[models.Panel] { return s.Panels },
		func(s *Session) *forms.Form[models.PanelPayload] { return s.PanelForm })
	registerEntity(api, "/campaigns",
		func(s *Session) *controller.ListController[models.Campaign] { return s.Campaigns },
		func(s *Session) *forms.Form[models.CampaignPayload] { return s.CampaignForm })
	registerEntity(api, "/customers",
		func(s *Session) *controller.ListController[models.Customer] { return s.Customers },
		func(s *Session) *forms.Form[models.CustomerPayload] { return s.CustomerForm })
	registerEntity(api, "/cities",
		func(s *Session) *controller.ListController[models.City] { return s.Cities },
		func(s *Session) *forms.Form[models.CityPayload] { return s.CityForm })
	registerEntity(api, "/communes",
		func(s *Session) *controller.ListController[models.Commune] { return s.Communes },
		func(s *Session) *forms.Form[models.CommunePayload] { return s.CommuneForm })
	registerEntity(api, "/countries",
		func(s *Session) *controller.ListController[models.Country] { return s.Countries },
		func(s *Session) *forms.Form[models.CountryPayload] { return s.CountryForm })
	registerEntity(api, "/panel-types",
		func(s *Session) *controller.ListController[models.PanelType] { return s.PanelTypes },
		func(s *Session) *forms.Form[models.PanelTypePayload] { return s.TypeForm })
	registerEntity(api, "/groups",
		func(s *Session) *controller.ListController[models.PanelGroup] { return s.Groups },
		func(s *Session) *forms.Form[models.PanelGroupPayload] { return s.GroupForm })
	registerEntity(api, "/alerts",
		func(s *Session) *controller.ListController[models.Alert] { return s.Alerts },
		func(s *Session) *forms.Form[models.AlertPayload] { return s.AlertForm })
	registerUserEntity(api)
	registerSettings(api)
}

// registerUserEntity wires the account listing. Accounts use two payload
// shapes, registration on create and profile edit on update, so the
// generic endpoints are composed piecewise instead of as one block.
func registerUserEntity(api fiber.Router) {
	users := func(s *Session) *controller.ListController[models.User] { return s.Users }
	registerEntityList(api, "/users", users)
	registerEntityExport(api, "/users", users)
	registerEntityCreate(api, "/users", users,
		func(s *Session) *forms.Form[models.RegisterPayload] { return s.RegisterForm })
	registerEntityUpdate(api, "/users", users,
		func(s *Session) *forms.Form[models.UpdateUserPayload] { return s.UserForm })
	registerEntityDelete(api, "/users", users)
}
