package web

import (
	"context"
	"strings"
	"sync"
	"time"

	"pannel_backoffice/internal/client"
	"pannel_backoffice/internal/controller"
	"pannel_backoffice/internal/export"
	"pannel_backoffice/internal/forms"
	"pannel_backoffice/internal/models"
	"pannel_backoffice/internal/resources"
	"pannel_backoffice/internal/utility"
)

// Session is the server-side state of one authenticated operator: the
// backend client carrying their token, one controller per entity listing,
// and the modal form states. Sessions are keyed by access token and expire
// after idling.
type Session struct {
	Token   string
	Profile models.LoginResponse
	Client  *client.Client
	Catalog *resources.Catalog
	Toasts  *toastQueue

	Panels     *controller.ListController[models.Panel]
	Campaigns  *controller.ListController[models.Campaign]
	Customers  *controller.ListController[models.Customer]
	Cities     *controller.ListController[models.City]
	Communes   *controller.ListController[models.Commune]
	Countries  *controller.ListController[models.Country]
	PanelTypes *controller.ListController[models.PanelType]
	Groups     *controller.ListController[models.PanelGroup]
	Alerts     *controller.ListController[models.Alert]
	Users      *controller.ListController[models.User]

	PanelForm    *forms.Form[models.PanelPayload]
	CampaignForm *forms.Form[models.CampaignPayload]
	CustomerForm *forms.Form[models.CustomerPayload]
	CityForm     *forms.Form[models.CityPayload]
	CommuneForm  *forms.Form[models.CommunePayload]
	CountryForm  *forms.Form[models.CountryPayload]
	TypeForm     *forms.Form[models.PanelTypePayload]
	GroupForm    *forms.Form[models.PanelGroupPayload]
	AlertForm    *forms.Form[models.AlertPayload]
	RegisterForm *forms.Form[models.RegisterPayload]
	UserForm     *forms.Form[models.UpdateUserPayload]

	confirm *requestConfirmer

	mu             sync.Mutex
	deletePassword string
	settings       models.SettingsPayload
}

// Role reports the operator's role as decoded from the stored token.
func (s *Session) Role() string {
	return s.Client.Tokens().Role()
}

// ArmConfirm records whether the current request confirmed a destructive
// operation.
func (s *Session) ArmConfirm(ok bool) {
	s.confirm.Arm(ok)
}

// ArmDeletePassword stages the caller's password for an account deletion.
func (s *Session) ArmDeletePassword(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletePassword = password
}

// Settings returns the session's settings page values.
func (s *Session) Settings() models.SettingsPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetSettings replaces the session's settings page values.
func (s *Session) SetSettings(settings models.SettingsPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func (s *Session) takeDeletePassword() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	pw := s.deletePassword
	s.deletePassword = ""
	return pw
}

// Close detaches every controller so late responses cannot write state.
func (s *Session) Close() {
	for _, closer := range []interface{ Close() }{
		s.Panels, s.Campaigns, s.Customers, s.Cities, s.Communes,
		s.Countries, s.PanelTypes, s.Groups, s.Alerts, s.Users,
	} {
		closer.Close()
	}
}

// Manager is the session registry. Idle sessions expire and get closed;
// every read renews the idle timer.
type Manager struct {
	cache      *utility.Cache
	backendURL string
	timeout    time.Duration
}

// NewManager builds a registry whose sessions talk to backendURL.
func NewManager(backendURL string, requestTimeout, ttl time.Duration) *Manager {
	cache := utility.NewCache(ttl, time.Minute)
	cache.OnEvict = func(_ string, value any) {
		if s, ok := value.(*Session); ok {
			s.Close()
		}
	}
	return &Manager{cache: cache, backendURL: backendURL, timeout: requestTimeout}
}

// Open creates a session for a fresh login response and registers it.
func (m *Manager) Open(login models.LoginResponse) *Session {
	tokens := client.NewTokenStore()
	tokens.Set(login.Access)
	token := login.Access

	cl := client.New(client.Options{
		BaseURL: m.backendURL,
		Timeout: m.timeout,
		Tokens:  tokens,
		// a 401 anywhere invalidates the whole session
		OnUnauthorized: func() { m.Remove(token) },
	})

	s := &Session{
		Token:    token,
		Profile:  login,
		Client:   cl,
		Catalog:  resources.NewCatalog(cl),
		Toasts:   &toastQueue{},
		confirm:  &requestConfirmer{},
		settings: models.DefaultSettings(),
	}
	s.buildControllers()
	s.buildForms()
	m.cache.Set(token, s)
	return s
}

// Get returns the session for a token and renews its idle timer.
func (m *Manager) Get(token string) (*Session, bool) {
	value, ok := m.cache.Get(token)
	if !ok {
		return nil, false
	}
	s, ok := value.(*Session)
	return s, ok
}

// Remove drops and closes a session.
func (m *Manager) Remove(token string) {
	m.cache.Delete(token)
}

// Stop shuts the registry down, closing every live session.
func (m *Manager) Stop() {
	m.cache.Stop()
}

func entityMessages(created, updated, deleted, loadFailed, confirmDel string) controller.Messages {
	return controller.Messages{
		Created:    created,
		Updated:    updated,
		Deleted:    deleted,
		LoadFailed: loadFailed,
		ConfirmDel: confirmDel,
	}
}

func (s *Session) buildControllers() {
	role := s.Role
	cat := s.Catalog

	panelsExport := export.PanelsSpec()
	s.Panels = controller.NewList(controller.ListConfig[models.Panel]{
		Name:  "panel",
		Fetch: cat.Panels.List,
		Create: func(ctx context.Context, p any) error { return cat.Panels.Create(ctx, p) },
		Update: func(ctx context.Context, id string, p any) error { return cat.Panels.Update(ctx, id, p) },
		Delete: cat.Panels.Delete,
		// newest first, whatever order the backend answered in
		Less: func(a, b models.Panel) bool { return a.CreatedAt > b.CreatedAt },
		Messages: entityMessages(
			"Panneau créé avec succès",
			"Panneau modifié avec succès",
			"Panneau supprimé avec succès",
			"Impossible de charger les panneaux",
			"Êtes-vous sûr de vouloir supprimer ce panneau ?"),
		Export: &panelsExport,
	}, role, s.Toasts, s.confirm)

	s.Campaigns = controller.NewList(controller.ListConfig[models.Campaign]{
		Name:  "campaign",
		Fetch: cat.Campaigns.List,
		Create: func(ctx context.Context, p any) error { return cat.Campaigns.Create(ctx, p) },
		Update: func(ctx context.Context, id string, p any) error { return cat.Campaigns.Update(ctx, id, p) },
		Delete: cat.Campaigns.Delete,
		Less:   func(a, b models.Campaign) bool { return a.CreatedAt > b.CreatedAt },
		Messages: entityMessages(
			"Campagne créée avec succès",
			"Campagne modifiée avec succès",
			"Campagne supprimée avec succès",
			"Impossible de charger les campagnes",
			"Êtes-vous sûr de vouloir supprimer cette campagne ?"),
	}, role, s.Toasts, s.confirm)

	s.Customers = controller.NewList(controller.ListConfig[models.Customer]{
		Name:  "customer",
		Fetch: cat.Customers.List,
		Create: func(ctx context.Context, p any) error { return cat.Customers.Create(ctx, p) },
		Update: func(ctx context.Context, id string, p any) error { return cat.Customers.Update(ctx, id, p) },
		Delete: cat.Customers.Delete,
		Messages: entityMessages(
			"Client créé avec succès",
			"Client modifié avec succès",
			"Client supprimé avec succès",
			"Impossible de charger les clients",
			"Êtes-vous sûr de vouloir supprimer ce client ?"),
	}, role, s.Toasts, s.confirm)

	citiesExport := export.CitiesSpec()
	s.Cities = controller.NewList(controller.ListConfig[models.City]{
		Name:  "city",
		Fetch: cat.Cities.List,
		Create: func(ctx context.Context, p any) error { return cat.Cities.Create(ctx, p) },
		Update: func(ctx context.Context, id string, p any) error { return cat.Cities.Update(ctx, id, p) },
		Delete: cat.Cities.Delete,
		Messages: entityMessages(
			"Ville créée avec succès",
			"Ville modifiée avec succès",
			"Ville supprimée avec succès",
			"Impossible de charger les villes",
			"Êtes-vous sûr de vouloir supprimer cette ville ?"),
		Export: &citiesExport,
	}, role, s.Toasts, s.confirm)

	communesExport := export.CommunesSpec()
	s.Communes = controller.NewList(controller.ListConfig[models.Commune]{
		Name:  "commune",
		Fetch: cat.Communes.List,
		Create: func(ctx context.Context, p any) error { return cat.Communes.Create(ctx, p) },
		Update: func(ctx context.Context, id string, p any) error { return cat.Communes.Update(ctx, id, p) },
		Delete: cat.Communes.Delete,
		Messages: entityMessages(
			"Commune créée avec succès",
			"Commune modifiée avec succès",
			"Commune supprimée avec succès",
			"Impossible de charger les communes",
			"Êtes-vous sûr de vouloir supprimer cette commune ?"),
		Export: &communesExport,
	}, role, s.Toasts, s.confirm)

	countriesExport := export.CountriesSpec()
	s.Countries = controller.NewList(controller.ListConfig[models.Country]{
		Name:     "country",
		Mode:     controller.ModeClient,
		FetchAll: cat.Countries.ListAll,
		Create:   func(ctx context.Context, p any) error { return cat.Countries.Create(ctx, p) },
		Update:   func(ctx context.Context, id string, p any) error { return cat.Countries.Update(ctx, id, p) },
		Delete:   cat.Countries.Delete,
		Match: func(c models.Country, q string) bool {
			return strings.Contains(foldName(c.Name), foldName(q))
		},
		Less: func(a, b models.Country) bool { return foldName(a.Name) < foldName(b.Name) },
		Messages: entityMessages(
			"Pays créé avec succès",
			"Pays modifié avec succès",
			"Pays supprimé avec succès",
			"Impossible de charger les pays",
			"Êtes-vous sûr de vouloir supprimer ce pays ?"),
		Export: &countriesExport,
	}, role, s.Toasts, s.confirm)

	typesExport := export.PanelTypesSpec()
	s.PanelTypes = controller.NewList(controller.ListConfig[models.PanelType]{
		Name:     "panel_type",
		Mode:     controller.ModeClient,
		FetchAll: cat.PanelTypes.ListAll,
		Create:   func(ctx context.Context, p any) error { return cat.PanelTypes.Create(ctx, p) },
		Update:   func(ctx context.Context, id string, p any) error { return cat.PanelTypes.Update(ctx, id, p) },
		Delete:   cat.PanelTypes.Delete,
		Match: func(t models.PanelType, q string) bool {
			return strings.Contains(foldName(t.Type), foldName(q))
		},
		Less: func(a, b models.PanelType) bool { return a.CreatedAt > b.CreatedAt },
		Messages: entityMessages(
			"Type de panneau créé avec succès",
			"Type de panneau modifié avec succès",
			"Type de panneau supprimé avec succès",
			"Impossible de charger les types de panneaux",
			"Êtes-vous sûr de vouloir supprimer ce type de panneau ?"),
		Export: &typesExport,
	}, role, s.Toasts, s.confirm)

	groupsExport := export.GroupsSpec()
	s.Groups = controller.NewList(controller.ListConfig[models.PanelGroup]{
		Name:  "panel_group",
		Fetch: cat.Groups.List,
		Create: func(ctx context.Context, p any) error { return cat.Groups.Create(ctx, p) },
		Update: func(ctx context.Context, id string, p any) error { return cat.Groups.Update(ctx, id, p) },
		Delete: cat.Groups.Delete,
		Messages: entityMessages(
			"Groupe créé avec succès",
			"Groupe modifié avec succès",
			"Groupe supprimé avec succès",
			"Impossible de charger les groupes",
			"Êtes-vous sûr de vouloir supprimer ce groupe ?"),
		Export: &groupsExport,
	}, role, s.Toasts, s.confirm)

	s.Alerts = controller.NewList(controller.ListConfig[models.Alert]{
		Name:  "alert",
		Fetch: cat.Alerts.List,
		Create: func(ctx context.Context, p any) error { return cat.Alerts.Create(ctx, p) },
		Update: func(ctx context.Context, id string, p any) error { return cat.Alerts.Update(ctx, id, p) },
		Delete: cat.Alerts.Delete,
		Messages: entityMessages(
			"Alerte créée avec succès",
			"Alerte modifiée avec succès",
			"Alerte supprimée avec succès",
			"Impossible de charger les alertes",
			"Êtes-vous sûr de vouloir supprimer cette alerte ?"),
	}, role, s.Toasts, s.confirm)

	usersExport := export.UsersSpec()
	s.Users = controller.NewList(controller.ListConfig[models.User]{
		Name: "user",
		Mode: controller.ModeClient,
		FetchAll: func(ctx context.Context) ([]models.User, error) {
			res, err := cat.Users.List(ctx)
			if err != nil {
				return nil, err
			}
			return res.Results, nil
		},
		Create: func(ctx context.Context, p any) error {
			return cat.Users.Register(ctx, p.(models.RegisterPayload))
		},
		Update: func(ctx context.Context, id string, p any) error {
			payload := p.(models.UpdateUserPayload)
			payload.UserID = id
			return cat.Users.Update(ctx, payload)
		},
		Delete: func(ctx context.Context, id string) error {
			return cat.Users.Delete(ctx, models.DeleteUserPayload{
				UserID:   id,
				Password: s.takeDeletePassword(),
			})
		},
		Match: func(u models.User, q string) bool {
			q = foldName(q)
			return strings.Contains(foldName(u.Email), q) ||
				strings.Contains(foldName(u.FirstName), q) ||
				strings.Contains(foldName(u.LastName), q)
		},
		MutateAction: controller.ActionManageUsers,
		Messages: entityMessages(
			"Utilisateur créé avec succès",
			"Utilisateur modifié avec succès",
			"Utilisateur supprimé avec succès",
			"Impossible de charger les utilisateurs",
			"Êtes-vous sûr de vouloir supprimer cet utilisateur ?"),
		Export: &usersExport,
	}, role, s.Toasts, s.confirm)
}

func (s *Session) buildForms() {
	s.PanelForm = forms.New[models.PanelPayload]()
	s.CampaignForm = forms.New[models.CampaignPayload]()
	s.CustomerForm = forms.New[models.CustomerPayload]()
	s.CityForm = forms.New[models.CityPayload]()
	s.CommuneForm = forms.New[models.CommunePayload]()
	s.CountryForm = forms.New[models.CountryPayload]()
	s.TypeForm = forms.New[models.PanelTypePayload]()
	s.GroupForm = forms.New[models.PanelGroupPayload]()
	s.AlertForm = forms.New[models.AlertPayload]()
	s.RegisterForm = forms.New[models.RegisterPayload]()
	s.UserForm = forms.New[models.UpdateUserPayload]()
}
