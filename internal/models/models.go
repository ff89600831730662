// Package models defines the entity records exchanged with the REST backend.
// Records carry no behavior: they are caches of the last successful backend
// response. Field names mirror the backend wire format exactly, including
// the product's historical "pannel" spelling. Timestamps are kept as the
// backend's ISO-8601 strings; they order lexicographically.
package models

// Country is the root of the geography hierarchy.
type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Commune belongs to one country.
type Commune struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Country Country `json:"country"`
}

// City belongs to one commune.
type City struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Commune Commune `json:"commune"`
}

// PanelType is a free-text physical category ("12m²", "Big Size", ...).
type PanelType struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// PanelGroup is a named collection label applied to panels.
type PanelGroup struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Panel is a physical billboard unit. It belongs to exactly one city (hence
// transitively one commune and country), one type and one group.
type Panel struct {
	ID          string     `json:"id"`
	TypePannel  PanelType  `json:"type_pannel"`
	GroupPannel PanelGroup `json:"group_pannel"`
	Surface     string     `json:"surface"`
	City        City       `json:"city"`
	Quantity    int        `json:"quantity"`
	FaceNumber  int        `json:"face_number"`
	Sense       string     `json:"sense"`
	Description string     `json:"description,omitempty"`
	Code        string     `json:"code"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

// Customer types.
const (
	CustomerParticulier = "particulier"
	CustomerEntreprise  = "entreprise"
)

// Customer is an advertiser, either a private individual or a company.
type Customer struct {
	ID             string `json:"id"`
	Fullname       string `json:"fullname"`
	Email          string `json:"email"`
	Indication     string `json:"indication"` // phone country code
	Phone          string `json:"phone"`
	EntrepriseName string `json:"entreprise_name,omitempty"`
	City           City   `json:"city"`
	Type           string `json:"type"` // particulier | entreprise
	CountCampaign  int    `json:"count_campaign"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// CampaignUser is the account that registered a campaign.
type CampaignUser struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	PhoneIndi string `json:"phone_indi"`
}

// CampaignPanel is one reserved panel with its requested quantity.
type CampaignPanel struct {
	Quantity int   `json:"quantity"`
	Panel    Panel `json:"panel"`
}

// Campaign associates one customer with a dated run over a multiset of
// panels. Invariant: StartDate <= EndDate; the panel list is non-empty at
// submission time (enforced client side only).
type Campaign struct {
	ID            string          `json:"id"`
	User          CampaignUser    `json:"user"`
	Customer      Customer        `json:"customer"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Panel         []CampaignPanel `json:"panel"`
	TimeRemaining string          `json:"time_remaining"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// Alert is a notification recipient.
type Alert struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Indication string `json:"indication"`
	Phone      string `json:"phone"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// User roles.
const (
	RoleReport = "report"
	RoleCreate = "create"
	RoleAdmin  = "admin"
)

// User is a back-office account. The role gates destructive and
// administrative operations.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	PhoneIndi string `json:"phone_indi"`
	Role      string `json:"role"` // report | create | admin
	Status    string `json:"status"`
}

// LoginResponse is the payload of POST /auth/user/login/.
type LoginResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	TokenExp string `json:"token_exp"`
	Data     struct {
		ID        int    `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
		Phone     string `json:"phone"`
		PhoneIndi string `json:"phone_indi"`
	} `json:"data"`
}
