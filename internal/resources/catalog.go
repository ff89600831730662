package resources

import (
	"pannel_backoffice/internal/client"
	"pannel_backoffice/internal/models"
)

// Backend entity paths. Trailing slashes follow the backend routing table
// exactly; adding or removing one turns into a redirect that drops the
// Authorization header.
const (
	PathPanels     = "/panel/panel"
	PathCampaigns  = "/panel/campaign"
	PathCustomers  = "/panel/customer/"
	PathCities     = "/panel/city/"
	PathCommunes   = "/panel/commune/"
	PathCountries  = "/panel/country/"
	PathPanelTypes = "/panel/type/panel/"
	PathGroups     = "/panel/group/panel/"
	PathAlerts     = "/panel/alert"
)

// Catalog bundles one accessor per backend entity over a shared client.
type Catalog struct {
	Panels     *Resource[models.Panel]
	Campaigns  *Resource[models.Campaign]
	Customers  *Resource[models.Customer]
	Cities     *Resource[models.City]
	Communes   *Resource[models.Commune]
	Countries  *Resource[models.Country]
	PanelTypes *Resource[models.PanelType]
	Groups     *Resource[models.PanelGroup]
	Alerts     *Resource[models.Alert]
	Users      *Users
}

// NewCatalog wires every accessor to the given client.
func NewCatalog(c *client.Client) *Catalog {
	return &Catalog{
		Panels:     NewResource[models.Panel](c, PathPanels).WithPatchUpdates(),
		Campaigns:  NewResource[models.Campaign](c, PathCampaigns),
		Customers:  NewResource[models.Customer](c, PathCustomers),
		Cities:     NewResource[models.City](c, PathCities),
		Communes:   NewResource[models.Commune](c, PathCommunes),
		Countries:  NewResource[models.Country](c, PathCountries),
		PanelTypes: NewResource[models.PanelType](c, PathPanelTypes),
		Groups:     NewResource[models.PanelGroup](c, PathGroups),
		Alerts:     NewResource[models.Alert](c, PathAlerts),
		Users:      NewUsers(c),
	}
}
